package models

import "time"

// Tournament is the aggregate root; it is loaded and saved as a whole.
type Tournament struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Teams             []Team    `json:"teams"`
	Groups            []*Group  `json:"groups"`
	InterzonalMatches []*Match  `json:"interzonal_matches"`
	Quarterfinals     []*Match  `json:"quarterfinals"`
	Semifinals        []*Match  `json:"semifinals"`
	Final             *Match    `json:"final"`
	IsStarted         bool      `json:"is_started"`
	IsCompleted       bool      `json:"is_completed"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (t *Tournament) TeamByID(id string) (Team, bool) {
	for _, team := range t.Teams {
		if team.ID == id {
			return team, true
		}
	}
	return Team{}, false
}

func (t *Tournament) GroupByID(id string) *Group {
	for _, g := range t.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// GroupOf returns the group the team was drawn into, or nil before the start.
func (t *Tournament) GroupOf(teamID string) *Group {
	for _, g := range t.Groups {
		if g.HasTeam(teamID) {
			return g
		}
	}
	return nil
}

// GroupMatches is the view of matches shown for a group: its own list plus the
// interzonal matches one of its members plays.
func (t *Tournament) GroupMatches(groupID string) []*Match {
	g := t.GroupByID(groupID)
	if g == nil {
		return nil
	}
	matches := make([]*Match, 0, len(g.Matches))
	matches = append(matches, g.Matches...)
	for _, m := range t.InterzonalMatches {
		if g.HasTeam(m.Team1ID) || g.HasTeam(m.Team2ID) {
			matches = append(matches, m)
		}
	}
	return matches
}

// GroupStageMatches returns every group and interzonal match, group by group.
func (t *Tournament) GroupStageMatches() []*Match {
	var matches []*Match
	for _, g := range t.Groups {
		matches = append(matches, g.Matches...)
	}
	return append(matches, t.InterzonalMatches...)
}

// AllMatches lists every match in lookup order: groups, interzonals,
// quarterfinals, semifinals, final.
func (t *Tournament) AllMatches() []*Match {
	matches := t.GroupStageMatches()
	matches = append(matches, t.Quarterfinals...)
	matches = append(matches, t.Semifinals...)
	if t.Final != nil {
		matches = append(matches, t.Final)
	}
	return matches
}

func (t *Tournament) MatchByID(id string) *Match {
	for _, m := range t.AllMatches() {
		if m.ID == id {
			return m
		}
	}
	return nil
}
