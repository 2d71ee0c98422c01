package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
	"github.com/Dosada05/padel-tournament/storage"
)

// Notifier pushes tournament events to live subscribers.
type Notifier interface {
	BroadcastToRoom(roomID string, eventType string, payload interface{})
}

// SnapshotArchiver keeps a copy of a tournament outside the database.
type SnapshotArchiver interface {
	Archive(ctx context.Context, t *models.Tournament) (*storage.UploadResult, error)
	Remove(ctx context.Context, tournamentID string) error
}

type CreateTournamentInput struct {
	Name  string               `json:"name"`
	Teams []brackets.TeamEntry `json:"teams"`
}

// ResultInput carries scores as pointers so a missing score is told apart from 0.
type ResultInput struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

type NextRoundStatus struct {
	Eligible bool         `json:"eligible"`
	Round    models.Round `json:"round,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	StartTournament(ctx context.Context, id string) (*models.Tournament, error)
	StartTournamentManual(ctx context.Context, id string, groups []brackets.ManualGroup) (*models.Tournament, error)
	SubmitResult(ctx context.Context, id, matchID string, input ResultInput) (*models.Tournament, error)
	DeleteMatch(ctx context.Context, id, matchID string) (*models.Tournament, error)
	AddExtraMatch(ctx context.Context, id string, input brackets.ExtraMatch) (*models.Match, error)
	GetTeamStats(ctx context.Context, id string) ([]models.TeamStats, error)
	GetGroupStats(ctx context.Context, id string) (map[string][]models.TeamStats, error)
	GetGroupMatches(ctx context.Context, id, groupID string) ([]*models.Match, error)
	CanGenerateNextRound(ctx context.Context, id string) (NextRoundStatus, error)
	GenerateNextRound(ctx context.Context, id string) (*models.Tournament, error)
	FillRandomResults(ctx context.Context, id string, round models.Round) (*models.Tournament, error)
	ArchiveTournament(ctx context.Context, id string) (*storage.UploadResult, error)
	DeleteTournament(ctx context.Context, id string) error
}

type tournamentService struct {
	repo     repositories.TournamentRepository
	locker   Locker
	notifier Notifier
	archiver SnapshotArchiver
	logger   *slog.Logger

	now   func() time.Time
	rngMu sync.Mutex
	rng   *rand.Rand
}

type TournamentServiceOption func(*tournamentService)

func WithNotifier(n Notifier) TournamentServiceOption {
	return func(s *tournamentService) { s.notifier = n }
}

func WithArchiver(a SnapshotArchiver) TournamentServiceOption {
	return func(s *tournamentService) { s.archiver = a }
}

func WithLocker(l Locker) TournamentServiceOption {
	return func(s *tournamentService) { s.locker = l }
}

func WithClock(now func() time.Time) TournamentServiceOption {
	return func(s *tournamentService) { s.now = now }
}

func WithRand(rng *rand.Rand) TournamentServiceOption {
	return func(s *tournamentService) { s.rng = rng }
}

func NewTournamentService(repo repositories.TournamentRepository, logger *slog.Logger, opts ...TournamentServiceOption) TournamentService {
	s := &tournamentService{
		repo:   repo,
		locker: NewLocalLocker(),
		logger: logger,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *tournamentService) load(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return t, nil
}

func (s *tournamentService) withRand(fn func(*rand.Rand) error) error {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return fn(s.rng)
}

// mutate runs one locked load-modify-save cycle. fn reports the knockout round
// it generated, if any. Nothing is saved when fn fails.
func (s *tournamentService) mutate(ctx context.Context, id string, fn func(t *models.Tournament) (models.Round, error)) (*models.Tournament, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock tournament %s: %w", id, err)
	}
	defer unlock()

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	wasCompleted := t.IsCompleted

	round, err := fn(t)
	if err != nil {
		return nil, classify(err)
	}
	t.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	s.notify(t.ID, brackets.EventTournamentUpdated, t)
	if round != "" {
		s.notify(t.ID, brackets.EventRoundGenerated, map[string]interface{}{"round": round})
	}
	if t.IsCompleted && !wasCompleted {
		s.logger.Info("tournament completed", "tournament_id", t.ID, "winner_id", t.Final.Winner())
		s.notify(t.ID, brackets.EventTournamentCompleted, t)
		s.archive(ctx, t)
	}
	return t, nil
}

// advance generates the next round if one became eligible. A seeding failure
// is logged and leaves the round ungenerated; the triggering write still stands.
func (s *tournamentService) advance(t *models.Tournament) models.Round {
	round, err := brackets.Advance(t)
	if err != nil {
		s.logger.Error("failed to seed next round", "tournament_id", t.ID, "error", err)
		return ""
	}
	if round != "" {
		s.logger.Info("round generated", "tournament_id", t.ID, "round", round)
	}
	return round
}

func (s *tournamentService) notify(id, eventType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.BroadcastToRoom(id, eventType, payload)
	}
}

func (s *tournamentService) archive(ctx context.Context, t *models.Tournament) {
	if s.archiver == nil {
		return
	}
	res, err := s.archiver.Archive(ctx, t)
	if err != nil {
		s.logger.Error("failed to archive tournament", "tournament_id", t.ID, "error", err)
		return
	}
	s.logger.Info("tournament archived", "tournament_id", t.ID, "location", res.Location)
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	t, err := brackets.NewTournament(input.Name, input.Teams, s.now())
	if err != nil {
		return nil, classify(err)
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	s.logger.Info("tournament created", "tournament_id", t.ID, "teams", len(t.Teams))
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return s.load(ctx, id)
}

func (s *tournamentService) StartTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		return "", s.withRand(func(rng *rand.Rand) error { return brackets.Start(t, rng) })
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament started", "tournament_id", id, "groups", len(t.Groups))
	return t, nil
}

func (s *tournamentService) StartTournamentManual(ctx context.Context, id string, groups []brackets.ManualGroup) (*models.Tournament, error) {
	t, err := s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		return "", brackets.StartManual(t, groups)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament started with manual groups", "tournament_id", id, "groups", len(t.Groups))
	return t, nil
}

func (s *tournamentService) SubmitResult(ctx context.Context, id, matchID string, input ResultInput) (*models.Tournament, error) {
	if input.Team1Score == nil || input.Team2Score == nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrScoresRequired)
	}
	return s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		if _, err := brackets.RecordResult(t, matchID, *input.Team1Score, *input.Team2Score); err != nil {
			return "", err
		}
		return s.advance(t), nil
	})
}

func (s *tournamentService) DeleteMatch(ctx context.Context, id, matchID string) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		_, err := brackets.DeleteMatch(t, matchID)
		return "", err
	})
}

func (s *tournamentService) AddExtraMatch(ctx context.Context, id string, input brackets.ExtraMatch) (*models.Match, error) {
	var added *models.Match
	_, err := s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		m, err := brackets.AddExtraMatch(t, input)
		added = m
		return "", err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *tournamentService) GetTeamStats(ctx context.Context, id string) ([]models.TeamStats, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.TournamentStandings(t), nil
}

func (s *tournamentService) GetGroupStats(ctx context.Context, id string) (map[string][]models.TeamStats, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.AllGroupStandings(t), nil
}

func (s *tournamentService) GetGroupMatches(ctx context.Context, id, groupID string) ([]*models.Match, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.GroupByID(groupID) == nil {
		return nil, classify(fmt.Errorf("%w: %s", brackets.ErrGroupNotFound, groupID))
	}
	return t.GroupMatches(groupID), nil
}

func (s *tournamentService) CanGenerateNextRound(ctx context.Context, id string) (NextRoundStatus, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return NextRoundStatus{}, err
	}
	round, ok := brackets.NextRound(t)
	return NextRoundStatus{Eligible: ok, Round: round}, nil
}

func (s *tournamentService) GenerateNextRound(ctx context.Context, id string) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		round, err := brackets.GenerateNextRound(t)
		if err != nil {
			return "", err
		}
		s.logger.Info("round generated", "tournament_id", t.ID, "round", round)
		return round, nil
	})
}

func (s *tournamentService) FillRandomResults(ctx context.Context, id string, round models.Round) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) (models.Round, error) {
		var filled int
		err := s.withRand(func(rng *rand.Rand) error {
			var err error
			filled, err = brackets.FillRandomResults(t, round, rng)
			return err
		})
		if err != nil {
			return "", err
		}
		s.logger.Info("random results filled", "tournament_id", t.ID, "round", round, "matches", filled)
		return s.advance(t), nil
	})
}

func (s *tournamentService) ArchiveTournament(ctx context.Context, id string) (*storage.UploadResult, error) {
	if s.archiver == nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalState, ErrArchiveDisabled)
	}
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.archiver.Archive(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to archive tournament %s: %w", id, err)
	}
	s.logger.Info("tournament archived", "tournament_id", id, "location", res.Location)
	return res, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to lock tournament %s: %w", id, err)
	}
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return classify(err)
	}
	s.logger.Info("tournament deleted", "tournament_id", id)
	s.notify(id, brackets.EventTournamentDeleted, map[string]string{"id": id})

	if s.archiver != nil {
		if err := s.archiver.Remove(ctx, id); err != nil {
			s.logger.Warn("failed to remove tournament archive", "tournament_id", id, "error", err)
		}
	}
	return nil
}
