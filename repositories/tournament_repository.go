package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/padel-tournament/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament id conflict")
)

type ListTournamentsFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}

// TournamentRepository loads and saves whole tournaments by id.
type TournamentRepository interface {
	List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	Save(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	query := `SELECT data FROM tournaments WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Completed != nil {
		query += fmt.Sprintf(" AND is_completed = $%d", argID)
		args = append(args, *filter.Completed)
		argID++
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()
	return scanTournaments(rows)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM tournaments WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return decodeTournament(data)
}

func (r *postgresTournamentRepository) Save(ctx context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	query := `
		INSERT INTO tournaments (id, name, is_started, is_completed, created_at, updated_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			is_started = EXCLUDED.is_started,
			is_completed = EXCLUDED.is_completed,
			updated_at = EXCLUDED.updated_at,
			data = EXCLUDED.data`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.IsStarted, t.IsCompleted, t.CreatedAt, t.UpdatedAt, string(data),
	)
	return handlePostgresError(err)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func handlePostgresError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrTournamentConflict, pqErr.Detail)
	}
	return err
}
