package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Dosada05/padel-tournament/models"
)

// memoryTournamentRepository keeps encoded copies so callers never share
// pointers with the store.
type memoryTournamentRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{docs: make(map[string][]byte)}
}

func (r *memoryTournamentRepository) List(_ context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tournaments := make([]*models.Tournament, 0, len(r.docs))
	for _, data := range r.docs {
		t, err := decodeTournament(data)
		if err != nil {
			return nil, err
		}
		if filter.Completed != nil && t.IsCompleted != *filter.Completed {
			continue
		}
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		if !tournaments[i].CreatedAt.Equal(tournaments[j].CreatedAt) {
			return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
		}
		return tournaments[i].ID < tournaments[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(tournaments) {
			return []*models.Tournament{}, nil
		}
		tournaments = tournaments[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(tournaments) {
		tournaments = tournaments[:filter.Limit]
	}
	return tournaments, nil
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	data, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return decodeTournament(data)
}

func (r *memoryTournamentRepository) Save(_ context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	r.mu.Lock()
	r.docs[t.ID] = data
	r.mu.Unlock()
	return nil
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memoryTournamentRepository) Ping(context.Context) error { return nil }
