package brackets

import (
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

// computeStandings accumulates completed matches into one record per team in scope.
// Teams outside the scope are ignored, so a cross-scope match only credits the
// in-scope side. The result is ranked by wins, games difference, then games for;
// remaining ties keep the order of teams.
func computeStandings(teams []models.Team, matches []*models.Match) []models.TeamStats {
	stats := make([]models.TeamStats, len(teams))
	index := make(map[string]*models.TeamStats, len(teams))
	for i, team := range teams {
		stats[i] = models.TeamStats{TeamID: team.ID, TeamName: team.Name}
		index[team.ID] = &stats[i]
	}

	for _, m := range matches {
		if !m.IsCompleted || m.Team1Score == nil || m.Team2Score == nil {
			continue
		}
		winner := m.Winner()
		record := func(teamID string, scored, conceded int) {
			s, ok := index[teamID]
			if !ok {
				return
			}
			s.TotalMatches++
			s.GamesFor += scored
			s.GamesAgainst += conceded
			if teamID == winner {
				s.Wins++
			} else {
				s.Losses++
			}
		}
		record(m.Team1ID, *m.Team1Score, *m.Team2Score)
		record(m.Team2ID, *m.Team2Score, *m.Team1Score)
	}

	for i := range stats {
		s := &stats[i]
		s.GamesDifference = s.GamesFor - s.GamesAgainst
		if s.TotalMatches > 0 {
			s.WinPercentage = 100 * float64(s.Wins) / float64(s.TotalMatches)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return ranksAbove(stats[i], stats[j])
	})
	return stats
}

// ranksAbove is the tie-break chain shared by standings and best-third selection.
func ranksAbove(a, b models.TeamStats) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.GamesDifference != b.GamesDifference {
		return a.GamesDifference > b.GamesDifference
	}
	return a.GamesFor > b.GamesFor
}

// countsForGroup reports whether a match feeds the standings of group g.
// Elimination and extra cross-group matches never do.
func countsForGroup(g *models.Group, m *models.Match) bool {
	switch m.Round {
	case models.RoundGroup:
		return g.HasTeam(m.Team1ID) && g.HasTeam(m.Team2ID)
	case models.RoundInterzonal:
		return g.HasTeam(m.Team1ID) || g.HasTeam(m.Team2ID)
	}
	return false
}

func groupTeams(t *models.Tournament, g *models.Group) []models.Team {
	teams := make([]models.Team, 0, len(g.TeamIDs))
	for _, id := range g.TeamIDs {
		if team, ok := t.TeamByID(id); ok {
			teams = append(teams, team)
		}
	}
	return teams
}

// GroupStandings ranks the members of one group.
func GroupStandings(t *models.Tournament, groupID string) ([]models.TeamStats, error) {
	g := t.GroupByID(groupID)
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return groupStandings(t, g), nil
}

func groupStandings(t *models.Tournament, g *models.Group) []models.TeamStats {
	var relevant []*models.Match
	for _, m := range t.GroupMatches(g.ID) {
		if countsForGroup(g, m) {
			relevant = append(relevant, m)
		}
	}
	return computeStandings(groupTeams(t, g), relevant)
}

// AllGroupStandings ranks every group, keyed by group id.
func AllGroupStandings(t *models.Tournament) map[string][]models.TeamStats {
	out := make(map[string][]models.TeamStats, len(t.Groups))
	for _, g := range t.Groups {
		out[g.ID] = groupStandings(t, g)
	}
	return out
}

// TournamentStandings ranks every team over every completed match, elimination
// rounds and extra matches included.
func TournamentStandings(t *models.Tournament) []models.TeamStats {
	return computeStandings(t.Teams, t.AllMatches())
}

// rankedTeamIDs returns a group's team ids in standings order.
func rankedTeamIDs(t *models.Tournament, g *models.Group) []string {
	stats := groupStandings(t, g)
	ids := make([]string, len(stats))
	for i, s := range stats {
		ids[i] = s.TeamID
	}
	return ids
}
