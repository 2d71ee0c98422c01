package brackets

import (
	"fmt"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament/models"
)

// newEntered creates an unstarted n-team tournament whose team i is "T<i>".
func newEntered(t *testing.T, n int) *models.Tournament {
	t.Helper()
	entries := make([]TeamEntry, n)
	for i := range entries {
		entries[i] = TeamEntry{Player1Surname: fmt.Sprintf("T%d", i), Player2Surname: "X"}
	}
	tour, err := NewTournament("Open", entries, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewTournament: %v", err)
	}
	for i := range tour.Teams {
		tour.Teams[i].ID = fmt.Sprintf("T%d", i)
	}
	return tour
}

func teamRange(from, to int) []string {
	ids := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		ids = append(ids, fmt.Sprintf("T%d", i))
	}
	return ids
}

// newStarted creates an n-team tournament whose groups are drawn in roster
// order, so group membership is predictable.
func newStarted(t *testing.T, n int) *models.Tournament {
	t.Helper()
	tour := newEntered(t, n)
	if err := StartOrdered(tour, teamRange(0, n)); err != nil {
		t.Fatalf("StartOrdered: %v", err)
	}
	return tour
}

func teamIndex(id string) int {
	var i int
	fmt.Sscanf(id, "T%d", &i)
	return i
}

// playLowerWins completes every open match, the lower-numbered team winning 6-2.
func playLowerWins(t *testing.T, tour *models.Tournament, matches []*models.Match) {
	t.Helper()
	for _, m := range matches {
		if m.IsCompleted {
			continue
		}
		s1, s2 := 6, 2
		if teamIndex(m.Team1ID) > teamIndex(m.Team2ID) {
			s1, s2 = 2, 6
		}
		if _, err := RecordResult(tour, m.ID, s1, s2); err != nil {
			t.Fatalf("RecordResult(%s): %v", m.ID, err)
		}
	}
}

func pairsOf(matches []*models.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Team1ID + "v" + m.Team2ID
	}
	return out
}

func assertPairs(t *testing.T, got []*models.Match, want ...string) {
	t.Helper()
	g := pairsOf(got)
	if len(g) != len(want) {
		t.Fatalf("got pairings %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got pairings %v, want %v", g, want)
		}
	}
}

func advance(t *testing.T, tour *models.Tournament, want models.Round) {
	t.Helper()
	got, err := Advance(tour)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got != want {
		t.Fatalf("Advance generated %q, want %q", got, want)
	}
}
