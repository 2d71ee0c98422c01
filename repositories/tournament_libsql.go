package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

// sqliteTime sorts lexicographically in chronological order.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

func sqliteBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

type libsqlTournamentRepository struct {
	db *sql.DB
}

// NewLibSQLTournamentRepository stores tournaments as SQLite JSONB documents.
func NewLibSQLTournamentRepository(db *sql.DB) TournamentRepository {
	return &libsqlTournamentRepository{db: db}
}

func (r *libsqlTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	query := `SELECT json(data) FROM tournaments WHERE 1=1`
	args := []interface{}{}

	if filter.Completed != nil {
		query += " AND is_completed = ?"
		args = append(args, sqliteBool(*filter.Completed))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()
	return scanTournaments(rows)
}

func (r *libsqlTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT json(data) FROM tournaments WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeTournament([]byte(data))
}

func (r *libsqlTournamentRepository) Save(ctx context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tournaments (id, name, is_started, is_completed, created_at, updated_at, data)
		 VALUES (?, ?, ?, ?, ?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			is_started = excluded.is_started,
			is_completed = excluded.is_completed,
			updated_at = excluded.updated_at,
			data = excluded.data`,
		t.ID, t.Name, sqliteBool(t.IsStarted), sqliteBool(t.IsCompleted),
		t.CreatedAt.UTC().Format(sqliteTime), t.UpdatedAt.UTC().Format(sqliteTime),
		string(data),
	)
	return err
}

func (r *libsqlTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *libsqlTournamentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
