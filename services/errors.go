package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/repositories"
)

// Error kinds surfaced to callers; handlers map them to HTTP statuses.
var (
	ErrNotFound             = errors.New("requested resource not found")
	ErrValidationFailed     = errors.New("validation failed")
	ErrIllegalState         = errors.New("operation not allowed in the current state")
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrScoresRequired     = errors.New("both scores are required")
	ErrArchiveDisabled    = errors.New("archive storage is not configured")
)

// classify wraps an engine or repository error with its kind so callers can
// match either the kind or the cause.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, ErrTournamentNotFound)
	case errors.Is(err, brackets.ErrMatchNotFound),
		errors.Is(err, brackets.ErrGroupNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, brackets.ErrNameRequired),
		errors.Is(err, brackets.ErrSurnameRequired),
		errors.Is(err, brackets.ErrTooFewTeams),
		errors.Is(err, brackets.ErrGroupCoverage),
		errors.Is(err, brackets.ErrUnknownTeam),
		errors.Is(err, brackets.ErrSameTeam),
		errors.Is(err, brackets.ErrInvalidScore),
		errors.Is(err, brackets.ErrTiedScore),
		errors.Is(err, brackets.ErrInvalidRound):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, brackets.ErrAlreadyStarted),
		errors.Is(err, brackets.ErrNotStarted),
		errors.Is(err, brackets.ErrNoGroups),
		errors.Is(err, brackets.ErrNoEligibleRound),
		errors.Is(err, brackets.ErrFinalExists),
		errors.Is(err, brackets.ErrMissingQualifier),
		errors.Is(err, brackets.ErrSeedingConflict):
		return fmt.Errorf("%w: %w", ErrIllegalState, err)
	}
	return err
}
