package brackets

import (
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

func allCompleted(matches []*models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.IsCompleted {
			return false
		}
	}
	return true
}

// GroupStageComplete reports whether every group and interzonal match has a result.
func GroupStageComplete(t *models.Tournament) bool {
	return t.IsStarted && allCompleted(t.GroupStageMatches())
}

// NextRound reports which knockout round, if any, can be generated now. Rounds
// are checked from the final backwards and a round is only offered while no
// later round exists, so at most one round is ever eligible.
func NextRound(t *models.Tournament) (models.Round, bool) {
	if !t.IsStarted || t.Final != nil {
		return "", false
	}
	layout := LayoutFor(len(t.Teams))
	groupsDone := GroupStageComplete(t)

	if layout.Final != nil {
		if (layout.FinalFromGroups && groupsDone) || allCompleted(t.Semifinals) {
			return models.RoundFinal, true
		}
	}
	if len(t.Semifinals) > 0 {
		return "", false
	}
	if layout.Semifinals != nil {
		if (layout.SemifinalsFromGroups && groupsDone) || allCompleted(t.Quarterfinals) {
			return models.RoundSemifinal, true
		}
	}
	if len(t.Quarterfinals) > 0 {
		return "", false
	}
	if layout.Quarterfinals != nil && groupsDone {
		return models.RoundQuarterfinal, true
	}
	return "", false
}

// Advance generates the next eligible round. It returns an empty round when
// nothing is eligible; a seeding failure leaves the tournament untouched.
func Advance(t *models.Tournament) (models.Round, error) {
	round, ok := NextRound(t)
	if !ok {
		return "", nil
	}
	if err := generateRound(t, round); err != nil {
		return "", err
	}
	return round, nil
}

// GenerateNextRound is Advance for an explicit request: having nothing to
// generate is an error.
func GenerateNextRound(t *models.Tournament) (models.Round, error) {
	if !t.IsStarted {
		return "", ErrNotStarted
	}
	if t.Final != nil {
		return "", ErrFinalExists
	}
	round, ok := NextRound(t)
	if !ok {
		return "", ErrNoEligibleRound
	}
	if err := generateRound(t, round); err != nil {
		return "", err
	}
	return round, nil
}

func generateRound(t *models.Tournament, round models.Round) error {
	rule := LayoutFor(len(t.Teams)).rule(round)
	if rule == nil {
		return fmt.Errorf("%w: %s", ErrNoEligibleRound, round)
	}
	pairs, err := rule(t)
	if err != nil {
		return err
	}

	matches := make([]*models.Match, len(pairs))
	for i, p := range pairs {
		matches[i] = &models.Match{
			ID:      fmt.Sprintf("%s-%d", round, i+1),
			Team1ID: p[0],
			Team2ID: p[1],
			Round:   round,
		}
	}

	switch round {
	case models.RoundQuarterfinal:
		t.Quarterfinals = matches
	case models.RoundSemifinal:
		t.Semifinals = matches
	case models.RoundFinal:
		matches[0].ID = "final"
		t.Final = matches[0]
	}
	return nil
}
