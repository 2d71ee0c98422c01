package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

// Archiver writes JSON snapshots of tournaments to object storage.
type Archiver struct {
	uploader FileUploader
}

func NewArchiver(uploader FileUploader) *Archiver {
	return &Archiver{uploader: uploader}
}

func SnapshotKey(tournamentID string) string {
	return fmt.Sprintf("tournaments/%s.json", tournamentID)
}

// Archive uploads the current state of t, replacing any earlier snapshot.
func (a *Archiver) Archive(ctx context.Context, t *models.Tournament) (*UploadResult, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot of %s: %w", t.ID, err)
	}
	return a.uploader.Upload(ctx, SnapshotKey(t.ID), "application/json", bytes.NewReader(data))
}

func (a *Archiver) Remove(ctx context.Context, tournamentID string) error {
	return a.uploader.Delete(ctx, SnapshotKey(tournamentID))
}
