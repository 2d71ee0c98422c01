package brackets

import (
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

// RoundRobin pairs every team of a group with every other team once. The
// nested i<j traversal makes match ids deterministic for a given team order.
func RoundRobin(groupID string, teamIDs []string) []*models.Match {
	matches := make([]*models.Match, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			gid := groupID
			matches = append(matches, &models.Match{
				ID:      fmt.Sprintf("%s-match-%d-%d", groupID, i, j),
				Team1ID: teamIDs[i],
				Team2ID: teamIDs[j],
				Round:   models.RoundGroup,
				GroupID: &gid,
			})
		}
	}
	return matches
}

// Interzonal plays a[i] against b[i] for every position. Interzonal matches carry
// no group id.
func Interzonal(a, b []string) ([]*models.Match, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("interzonal groups differ in size (%d vs %d)", len(a), len(b))
	}
	matches := make([]*models.Match, 0, len(a))
	for i := range a {
		matches = append(matches, &models.Match{
			ID:      fmt.Sprintf("interzonal-%s-%s", a[i], b[i]),
			Team1ID: a[i],
			Team2ID: b[i],
			Round:   models.RoundInterzonal,
		})
	}
	return matches, nil
}
