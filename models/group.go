package models

// Group is a round-robin pool. Matches holds the group's own matches and any extra
// matches filed under it; interzonal matches live on the tournament.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	TeamIDs []string `json:"team_ids"`
	Matches []*Match `json:"matches"`
}

func (g *Group) HasTeam(teamID string) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
