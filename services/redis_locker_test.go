package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis answers the two commands the locker sends. Anything else panics
// on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	acquired   bool
	acquireErr error
	releaseErr error
	released   []string
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(f.acquired, f.acquireErr)
}

func (f *fakeRedis) EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	f.released = append(f.released, keys...)
	if f.releaseErr != nil {
		return redis.NewCmdResult(nil, f.releaseErr)
	}
	return redis.NewCmdResult(int64(1), nil)
}

func newTestRedisLocker(t *testing.T, client *fakeRedis) (Locker, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewRedisLocker(client, time.Minute, logger), &logs
}

func TestRedisLockerRelease(t *testing.T) {
	tests := []struct {
		name       string
		releaseErr error
		wantWarn   bool
	}{
		{name: "released", wantWarn: false},
		{name: "connection lost", releaseErr: errors.New("dial tcp: connection refused"), wantWarn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeRedis{acquired: true, releaseErr: tt.releaseErr}
			locker, logs := newTestRedisLocker(t, client)

			unlock, err := locker.Lock(context.Background(), "t1")
			if err != nil {
				t.Fatalf("Lock: %v", err)
			}
			unlock()

			if len(client.released) != 1 || client.released[0] != lockKeyPrefix+"t1" {
				t.Errorf("released keys = %v", client.released)
			}
			warned := strings.Contains(logs.String(), "failed to release tournament lock")
			if warned != tt.wantWarn {
				t.Errorf("warning logged = %v, want %v; logs: %s", warned, tt.wantWarn, logs.String())
			}
		})
	}
}

func TestRedisLockerAcquireFailures(t *testing.T) {
	boom := errors.New("redis down")
	tests := []struct {
		name    string
		client  *fakeRedis
		wantErr error
	}{
		{name: "command error", client: &fakeRedis{acquireErr: boom}, wantErr: boom},
		{name: "held until deadline", client: &fakeRedis{acquired: false}, wantErr: context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker, _ := newTestRedisLocker(t, tt.client)
			ctx, cancel := context.WithTimeout(context.Background(), 3*lockRetry)
			defer cancel()

			if _, err := locker.Lock(ctx, "t1"); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(tt.client.released) != 0 {
				t.Errorf("released %v without holding the lock", tt.client.released)
			}
		})
	}
}
