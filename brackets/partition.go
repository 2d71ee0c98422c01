package brackets

import (
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

func groupName(index, total int) string {
	if total == 1 {
		return "Unique Group"
	}
	return fmt.Sprintf("Group %c", 'A'+index)
}

func newGroup(index, total int, teamIDs []string) *models.Group {
	id := fmt.Sprintf("group-%d", index+1)
	ids := append([]string(nil), teamIDs...)
	return &models.Group{
		ID:      id,
		Name:    groupName(index, total),
		TeamIDs: ids,
		Matches: RoundRobin(id, ids),
	}
}

// Partition splits an ordered roster into the groups of its layout row, each
// with its round-robin schedule, plus the interzonal matches the row asks for.
func Partition(teamIDs []string) ([]*models.Group, []*models.Match, error) {
	if len(teamIDs) < MinTeams {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewTeams, len(teamIDs))
	}
	layout := LayoutFor(len(teamIDs))
	members := layout.slice(teamIDs)

	groups := make([]*models.Group, len(members))
	for i, ids := range members {
		groups[i] = newGroup(i, len(members), ids)
	}

	if len(layout.InterzonalGroups) != 2 {
		return groups, nil, nil
	}
	a, b := groups[layout.InterzonalGroups[0]], groups[layout.InterzonalGroups[1]]
	interzonals, err := Interzonal(a.TeamIDs, b.TeamIDs)
	if err != nil {
		return nil, nil, err
	}
	return groups, interzonals, nil
}
