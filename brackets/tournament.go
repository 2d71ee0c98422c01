package brackets

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/padel-tournament/models"
)

// TeamEntry is a pair as submitted on creation: two player surnames.
type TeamEntry struct {
	Player1Surname string `json:"player1_surname"`
	Player2Surname string `json:"player2_surname"`
}

// ManualGroup is an organizer-defined group used instead of the random draw.
type ManualGroup struct {
	Name    string   `json:"name"`
	TeamIDs []string `json:"team_ids"`
}

// ExtraMatch describes a match added by hand outside the generated schedule.
type ExtraMatch struct {
	Team1ID string       `json:"team1_id"`
	Team2ID string       `json:"team2_id"`
	Round   models.Round `json:"round"`
	GroupID string       `json:"group_id,omitempty"`
}

func NewTeam(entry TeamEntry) (models.Team, error) {
	s1, s2 := strings.TrimSpace(entry.Player1Surname), strings.TrimSpace(entry.Player2Surname)
	if s1 == "" || s2 == "" {
		return models.Team{}, ErrSurnameRequired
	}
	p1 := models.Player{ID: uuid.NewString(), Surname: s1}
	p2 := models.Player{ID: uuid.NewString(), Surname: s2}
	return models.Team{
		ID:      uuid.NewString(),
		Player1: p1,
		Player2: p2,
		Name:    models.TeamName(p1, p2),
	}, nil
}

// NewTournament builds an unstarted tournament with a fresh id for the
// tournament, every team and every player.
func NewTournament(name string, entries []TeamEntry, now time.Time) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(entries) < MinTeams {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewTeams, len(entries))
	}

	teams := make([]models.Team, 0, len(entries))
	for i, e := range entries {
		team, err := NewTeam(e)
		if err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
		teams = append(teams, team)
	}

	return &models.Tournament{
		ID:        uuid.NewString(),
		Name:      name,
		Teams:     teams,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Start shuffles the roster and draws groups from the layout table.
func Start(t *models.Tournament, rng *rand.Rand) error {
	ids := make([]string, len(t.Teams))
	for i, team := range t.Teams {
		ids[i] = team.ID
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return StartOrdered(t, ids)
}

// StartOrdered draws groups from the roster in the given order, without shuffling.
func StartOrdered(t *models.Tournament, teamIDs []string) error {
	if t.IsStarted {
		return ErrAlreadyStarted
	}
	if len(t.Teams) < MinTeams {
		return ErrTooFewTeams
	}
	if err := checkCoverage(t, [][]string{teamIDs}); err != nil {
		return err
	}
	groups, interzonals, err := Partition(teamIDs)
	if err != nil {
		return err
	}
	t.Groups = groups
	t.InterzonalMatches = interzonals
	t.IsStarted = true
	return nil
}

// StartManual starts the tournament with organizer-defined groups. Every team
// must appear in exactly one group.
func StartManual(t *models.Tournament, manual []ManualGroup) error {
	if t.IsStarted {
		return ErrAlreadyStarted
	}
	if len(manual) == 0 {
		return fmt.Errorf("%w: no groups given", ErrGroupCoverage)
	}
	members := make([][]string, len(manual))
	for i, mg := range manual {
		if len(mg.TeamIDs) < 2 {
			return fmt.Errorf("%w: group %d needs at least 2 teams", ErrGroupCoverage, i+1)
		}
		members[i] = mg.TeamIDs
	}
	if err := checkCoverage(t, members); err != nil {
		return err
	}

	groups := make([]*models.Group, len(manual))
	for i, mg := range manual {
		g := newGroup(i, len(manual), mg.TeamIDs)
		if name := strings.TrimSpace(mg.Name); name != "" {
			g.Name = name
		}
		groups[i] = g
	}
	t.Groups = groups
	t.InterzonalMatches = nil
	t.IsStarted = true
	return nil
}

func checkCoverage(t *models.Tournament, members [][]string) error {
	seen := make(map[string]bool, len(t.Teams))
	for _, ids := range members {
		for _, id := range ids {
			if _, ok := t.TeamByID(id); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownTeam, id)
			}
			if seen[id] {
				return fmt.Errorf("%w: team %s placed twice", ErrGroupCoverage, id)
			}
			seen[id] = true
		}
	}
	if len(seen) != len(t.Teams) {
		return fmt.Errorf("%w: %d of %d teams placed", ErrGroupCoverage, len(seen), len(t.Teams))
	}
	return nil
}

// RecordResult stores a score on any match, completed or not. Completing the
// final completes the tournament.
func RecordResult(t *models.Tournament, matchID string, team1Score, team2Score int) (*models.Match, error) {
	if team1Score < 0 || team2Score < 0 {
		return nil, ErrInvalidScore
	}
	if team1Score == team2Score {
		return nil, ErrTiedScore
	}
	m := t.MatchByID(matchID)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	m.Complete(team1Score, team2Score)
	if m == t.Final {
		t.IsCompleted = true
	}
	return m, nil
}

func removeMatch(matches []*models.Match, id string) ([]*models.Match, *models.Match) {
	for i, m := range matches {
		if m.ID == id {
			return append(matches[:i:i], matches[i+1:]...), m
		}
	}
	return matches, nil
}

// DeleteMatch removes a match from wherever it lives. Removing the final
// reopens the tournament.
func DeleteMatch(t *models.Tournament, matchID string) (*models.Match, error) {
	var removed *models.Match
	for _, g := range t.Groups {
		if g.Matches, removed = removeMatch(g.Matches, matchID); removed != nil {
			return removed, nil
		}
	}
	if t.InterzonalMatches, removed = removeMatch(t.InterzonalMatches, matchID); removed != nil {
		return removed, nil
	}
	if t.Quarterfinals, removed = removeMatch(t.Quarterfinals, matchID); removed != nil {
		return removed, nil
	}
	if t.Semifinals, removed = removeMatch(t.Semifinals, matchID); removed != nil {
		return removed, nil
	}
	if t.Final != nil && t.Final.ID == matchID {
		removed = t.Final
		t.Final = nil
		t.IsCompleted = false
		return removed, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
}

// AddExtraMatch appends a hand-made match to the list of its round. Group
// matches go to the named group, or to the first group when none is named; they
// only count for that group's standings when both teams are members.
func AddExtraMatch(t *models.Tournament, in ExtraMatch) (*models.Match, error) {
	if !t.IsStarted {
		return nil, ErrNotStarted
	}
	if in.Team1ID == in.Team2ID {
		return nil, ErrSameTeam
	}
	for _, id := range []string{in.Team1ID, in.Team2ID} {
		if _, ok := t.TeamByID(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, id)
		}
	}

	m := &models.Match{
		ID:      "extra-" + uuid.NewString(),
		Team1ID: in.Team1ID,
		Team2ID: in.Team2ID,
		Round:   in.Round,
	}

	switch in.Round {
	case models.RoundGroup:
		var g *models.Group
		if in.GroupID != "" {
			g = t.GroupByID(in.GroupID)
			if g == nil {
				return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, in.GroupID)
			}
		} else if len(t.Groups) > 0 {
			g = t.Groups[0]
		} else {
			return nil, ErrNoGroups
		}
		gid := g.ID
		m.GroupID = &gid
		g.Matches = append(g.Matches, m)
	case models.RoundQuarterfinal:
		t.Quarterfinals = append(t.Quarterfinals, m)
	case models.RoundSemifinal:
		t.Semifinals = append(t.Semifinals, m)
	case models.RoundFinal:
		if t.Final != nil {
			return nil, ErrFinalExists
		}
		m.ID = "final"
		t.Final = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRound, in.Round)
	}
	return m, nil
}

// FillRandomResults gives every open match a random score from 0 to 6,
// optionally only in one round. Ties are re-rolled. It returns how many
// matches were filled.
func FillRandomResults(t *models.Tournament, round models.Round, rng *rand.Rand) (int, error) {
	if !t.IsStarted {
		return 0, ErrNotStarted
	}
	if round != "" && !round.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRound, round)
	}

	filled := 0
	for _, m := range t.AllMatches() {
		if m.IsCompleted || (round != "" && m.Round != round) {
			continue
		}
		s1, s2 := rng.IntN(7), rng.IntN(7)
		for s1 == s2 {
			s2 = rng.IntN(7)
		}
		m.Complete(s1, s2)
		if m == t.Final {
			t.IsCompleted = true
		}
		filled++
	}
	return filled, nil
}
