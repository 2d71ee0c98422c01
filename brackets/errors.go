package brackets

import "errors"

var (
	ErrNameRequired    = errors.New("tournament name is required")
	ErrSurnameRequired = errors.New("both players need a surname")
	ErrTooFewTeams     = errors.New("a tournament needs at least 4 teams")
	ErrAlreadyStarted  = errors.New("tournament has already started")
	ErrNotStarted      = errors.New("tournament has not started")
	ErrGroupCoverage   = errors.New("every team must be placed in exactly one group")

	ErrMatchNotFound = errors.New("match not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrUnknownTeam   = errors.New("team is not part of this tournament")
	ErrSameTeam      = errors.New("a match needs two different teams")
	ErrInvalidScore  = errors.New("scores must be non-negative integers")
	ErrTiedScore     = errors.New("a match cannot end in a tie")
	ErrInvalidRound  = errors.New("invalid round")
	ErrNoGroups      = errors.New("tournament has no groups")

	ErrNoEligibleRound  = errors.New("no round is ready to be generated")
	ErrFinalExists      = errors.New("tournament already has a final")
	ErrMissingQualifier = errors.New("not enough ranked teams to seed the round")
	ErrSeedingConflict  = errors.New("seeding paired two teams from the same group")
)
