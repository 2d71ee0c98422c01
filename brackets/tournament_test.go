package brackets

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament/models"
)

func entries(n int) []TeamEntry {
	out := make([]TeamEntry, n)
	for i := range out {
		out[i] = TeamEntry{Player1Surname: "Galan", Player2Surname: "Lebron"}
	}
	return out
}

func TestNewTournamentValidation(t *testing.T) {
	now := time.Now()
	if _, err := NewTournament("  ", entries(4), now); !errors.Is(err, ErrNameRequired) {
		t.Errorf("blank name: err = %v", err)
	}
	if _, err := NewTournament("Open", entries(3), now); !errors.Is(err, ErrTooFewTeams) {
		t.Errorf("3 teams: err = %v", err)
	}
	bad := entries(4)
	bad[2].Player2Surname = ""
	if _, err := NewTournament("Open", bad, now); !errors.Is(err, ErrSurnameRequired) {
		t.Errorf("missing surname: err = %v", err)
	}

	tour, err := NewTournament("Open", entries(4), now)
	if err != nil {
		t.Fatal(err)
	}
	if tour.IsStarted || tour.ID == "" || tour.Teams[0].Name != "Galan & Lebron" {
		t.Errorf("unexpected tournament %+v", tour)
	}
	if tour.Teams[0].ID == tour.Teams[1].ID {
		t.Error("teams share an id")
	}
}

func TestStartShufflesAndRejectsRestart(t *testing.T) {
	tour, err := NewTournament("Open", entries(8), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	if err := Start(tour, rng); err != nil {
		t.Fatal(err)
	}
	if !tour.IsStarted || len(tour.Groups) != 2 {
		t.Fatalf("started = %v, groups = %d", tour.IsStarted, len(tour.Groups))
	}
	for _, g := range tour.Groups {
		if len(g.Matches) != 6 {
			t.Errorf("%s has %d matches, want 6", g.Name, len(g.Matches))
		}
	}
	if err := Start(tour, rng); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("restart: err = %v", err)
	}
}

func TestStartManualCoverage(t *testing.T) {
	tour, err := NewTournament("Open", entries(4), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	ids := []string{tour.Teams[0].ID, tour.Teams[1].ID, tour.Teams[2].ID, tour.Teams[3].ID}

	tests := []struct {
		name   string
		groups []ManualGroup
		want   error
	}{
		{"no groups", nil, ErrGroupCoverage},
		{"missing team", []ManualGroup{{TeamIDs: ids[:3]}}, ErrGroupCoverage},
		{"duplicate", []ManualGroup{{TeamIDs: ids[:2]}, {TeamIDs: []string{ids[1], ids[2], ids[3]}}}, ErrGroupCoverage},
		{"unknown", []ManualGroup{{TeamIDs: append([]string{"ghost"}, ids...)}}, ErrUnknownTeam},
		{"lonely team", []ManualGroup{{TeamIDs: ids[:3]}, {TeamIDs: ids[3:]}}, ErrGroupCoverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := StartManual(tour, tt.groups); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if tour.IsStarted {
				t.Fatal("tournament started despite error")
			}
		})
	}

	err = StartManual(tour, []ManualGroup{{Name: "Court 1", TeamIDs: ids[:2]}, {TeamIDs: ids[2:]}})
	if err != nil {
		t.Fatal(err)
	}
	if tour.Groups[0].Name != "Court 1" || tour.Groups[1].Name != "Group B" {
		t.Errorf("group names = %q, %q", tour.Groups[0].Name, tour.Groups[1].Name)
	}
}

func TestRecordResultValidation(t *testing.T) {
	tour := newStarted(t, 4)
	id := tour.Groups[0].Matches[0].ID

	if _, err := RecordResult(tour, id, -1, 3); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative: err = %v", err)
	}
	if _, err := RecordResult(tour, id, 3, 3); !errors.Is(err, ErrTiedScore) {
		t.Errorf("tie: err = %v", err)
	}
	if _, err := RecordResult(tour, "nope", 6, 3); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("unknown: err = %v", err)
	}

	m, err := RecordResult(tour, id, 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	if m.Winner() != m.Team2ID {
		t.Errorf("winner = %s, want %s", m.Winner(), m.Team2ID)
	}
	// A completed result can be overwritten.
	if m, _ = RecordResult(tour, id, 6, 2); m.Winner() != m.Team1ID {
		t.Errorf("winner after overwrite = %s", m.Winner())
	}
}

func TestDeleteFinalReopensTournament(t *testing.T) {
	tour := newStarted(t, 4)
	playLowerWins(t, tour, tour.GroupStageMatches())
	advance(t, tour, models.RoundFinal)
	if _, err := RecordResult(tour, "final", 6, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := DeleteMatch(tour, "final"); err != nil {
		t.Fatal(err)
	}
	if tour.Final != nil || tour.IsCompleted {
		t.Fatal("final still present after delete")
	}
	// The final is eligible again.
	if round, ok := NextRound(tour); !ok || round != models.RoundFinal {
		t.Errorf("NextRound = %q, %v", round, ok)
	}
	if _, err := DeleteMatch(tour, "final"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestDeleteGroupMatch(t *testing.T) {
	tour := newStarted(t, 5)
	id := tour.Groups[0].Matches[3].ID
	if _, err := DeleteMatch(tour, id); err != nil {
		t.Fatal(err)
	}
	if len(tour.Groups[0].Matches) != 9 || tour.MatchByID(id) != nil {
		t.Error("group match not removed")
	}
}

func TestAddExtraMatch(t *testing.T) {
	tour := newStarted(t, 8)

	if _, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T0", Team2ID: "T0", Round: models.RoundGroup}); !errors.Is(err, ErrSameTeam) {
		t.Errorf("same team: err = %v", err)
	}
	if _, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T0", Team2ID: "ghost", Round: models.RoundGroup}); !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("unknown team: err = %v", err)
	}
	if _, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T0", Team2ID: "T1", Round: models.RoundInterzonal}); !errors.Is(err, ErrInvalidRound) {
		t.Errorf("interzonal: err = %v", err)
	}

	m, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T0", Team2ID: "T1", Round: models.RoundGroup, GroupID: "group-1"})
	if err != nil {
		t.Fatal(err)
	}
	if m.GroupID == nil || *m.GroupID != "group-1" || len(tour.Groups[0].Matches) != 7 {
		t.Errorf("extra group match = %+v", m)
	}

	final, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T0", Team2ID: "T4", Round: models.RoundFinal})
	if err != nil {
		t.Fatal(err)
	}
	if final.ID != "final" || tour.Final != final {
		t.Error("extra final not installed")
	}
	if _, err := AddExtraMatch(tour, ExtraMatch{Team1ID: "T1", Team2ID: "T5", Round: models.RoundFinal}); !errors.Is(err, ErrFinalExists) {
		t.Errorf("second final: err = %v", err)
	}
}

func TestFillRandomResults(t *testing.T) {
	tour := newStarted(t, 8)
	rng := rand.New(rand.NewPCG(7, 7))

	n, err := FillRandomResults(tour, models.RoundGroup, rng)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Errorf("filled %d matches, want 12", n)
	}
	for _, m := range tour.GroupStageMatches() {
		if !m.IsCompleted || *m.Team1Score == *m.Team2Score || *m.Team1Score > 6 || *m.Team2Score > 6 {
			t.Fatalf("bad random result %+v", m)
		}
	}

	if n, _ := FillRandomResults(tour, "", rng); n != 0 {
		t.Errorf("refilled %d matches", n)
	}
	if _, err := FillRandomResults(tour, "playoff", rng); !errors.Is(err, ErrInvalidRound) {
		t.Errorf("bad round: err = %v", err)
	}
}
