package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/padel-tournament/models"
)

func TestRoundRobinPairsEveryTeamOnce(t *testing.T) {
	tests := []struct {
		teams int
		want  int
	}{
		{2, 1},
		{3, 3},
		{4, 6},
		{5, 10},
		{6, 15},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d teams", tt.teams), func(t *testing.T) {
			ids := teamRange(0, tt.teams)
			matches := RoundRobin("group-1", ids)
			if len(matches) != tt.want {
				t.Fatalf("got %d matches, want %d", len(matches), tt.want)
			}

			seen := make(map[[2]string]bool, len(matches))
			for _, m := range matches {
				if m.Team1ID == m.Team2ID {
					t.Errorf("%s pairs %s with itself", m.ID, m.Team1ID)
				}
				key := [2]string{m.Team1ID, m.Team2ID}
				if teamIndex(m.Team1ID) > teamIndex(m.Team2ID) {
					key = [2]string{m.Team2ID, m.Team1ID}
				}
				if seen[key] {
					t.Errorf("%s v %s scheduled twice", key[0], key[1])
				}
				seen[key] = true

				wantID := fmt.Sprintf("group-1-match-%d-%d", teamIndex(m.Team1ID), teamIndex(m.Team2ID))
				if m.ID != wantID {
					t.Errorf("match id = %q, want %q", m.ID, wantID)
				}
				if m.Round != models.RoundGroup {
					t.Errorf("%s round = %q", m.ID, m.Round)
				}
				if m.GroupID == nil || *m.GroupID != "group-1" {
					t.Errorf("%s group id = %v", m.ID, m.GroupID)
				}
			}
		})
	}
}

func TestInterzonal(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []string
		want    []string
		wantErr bool
	}{
		{name: "equal groups", a: []string{"T0", "T1"}, b: []string{"T5", "T6"}, want: []string{"T0vT5", "T1vT6"}},
		{name: "size mismatch", a: []string{"T0", "T1", "T2"}, b: []string{"T5", "T6"}, wantErr: true},
		{name: "empty", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Interzonal(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Interzonal(%v, %v) returned no error", tt.a, tt.b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Interzonal: %v", err)
			}
			assertPairs(t, matches, tt.want...)
			for _, m := range matches {
				if want := "interzonal-" + m.Team1ID + "-" + m.Team2ID; m.ID != want {
					t.Errorf("match id = %q, want %q", m.ID, want)
				}
				if m.Round != models.RoundInterzonal || m.GroupID != nil {
					t.Errorf("%s: round %q group %v", m.ID, m.Round, m.GroupID)
				}
			}
		})
	}
}
