package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"testing"

	"github.com/Dosada05/padel-tournament/models"
)

type recordingUploader struct {
	objects map[string][]byte
	types   map[string]string
}

func (u *recordingUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	u.objects[key] = buf.Bytes()
	u.types[key] = contentType
	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *recordingUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	return nil
}

func (u *recordingUploader) GetPublicURL(key string) string {
	return "https://cdn.example/" + key
}

func TestArchiverUploadsSnapshot(t *testing.T) {
	up := &recordingUploader{objects: map[string][]byte{}, types: map[string]string{}}
	a := NewArchiver(up)

	res, err := a.Archive(context.Background(), &models.Tournament{ID: "abc", Name: "Open"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Key != "tournaments/abc.json" || res.Location != "https://cdn.example/tournaments/abc.json" {
		t.Errorf("result = %+v", res)
	}
	if up.types[res.Key] != "application/json" {
		t.Errorf("content type = %q", up.types[res.Key])
	}
	var back models.Tournament
	if err := json.Unmarshal(up.objects[res.Key], &back); err != nil || back.Name != "Open" {
		t.Errorf("snapshot = %s (%v)", up.objects[res.Key], err)
	}

	if err := a.Remove(context.Background(), "abc"); err != nil {
		t.Fatal(err)
	}
	if _, ok := up.objects[res.Key]; ok {
		t.Error("snapshot not removed")
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example/", "tournaments/a.json", "https://cdn.example/tournaments/a.json"},
		{"https://cdn.example/archive/", "/tournaments/a.json", "https://cdn.example/archive/tournaments/a.json"},
		{"https://cdn.example/", "", ""},
	}
	for _, tt := range tests {
		base, _ := url.Parse(tt.base)
		if got := publicURL(base, tt.key); got != tt.want {
			t.Errorf("publicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
		}
	}
}
