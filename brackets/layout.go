package brackets

import "github.com/Dosada05/padel-tournament/models"

// MinTeams is the smallest roster a tournament accepts.
const MinTeams = 4

// Layout is one row of the per-team-count table: how the roster is split into
// groups and how each elimination round is seeded. A nil rule means the round
// is skipped.
type Layout struct {
	GroupSizes []int
	// InterzonalGroups names the two group indexes linked by interzonal matches.
	InterzonalGroups []int

	Quarterfinals seedingRule
	Semifinals    seedingRule
	Final         seedingRule

	// SemifinalsFromGroups and FinalFromGroups make a round eligible as soon as
	// the group stage is complete instead of after the previous knockout round.
	SemifinalsFromGroups bool
	FinalFromGroups      bool

	// spreadRemainder appends teams left over after equal slicing to groups
	// round-robin; used by the fallback for large rosters.
	spreadRemainder bool
}

func (l Layout) rule(round models.Round) seedingRule {
	switch round {
	case models.RoundQuarterfinal:
		return l.Quarterfinals
	case models.RoundSemifinal:
		return l.Semifinals
	case models.RoundFinal:
		return l.Final
	}
	return nil
}

func singleGroup(size int) Layout {
	return Layout{
		GroupSizes:           []int{size},
		Semifinals:           singleGroupOneVsFour,
		SemifinalsFromGroups: true,
		Final:                semifinalWinners,
	}
}

func twoGroups(sizes ...int) Layout {
	return Layout{
		GroupSizes:    sizes,
		Quarterfinals: twoGroupCross,
		Semifinals:    quarterfinalWinners,
		Final:         semifinalWinners,
	}
}

func bestThirdGroups(sizes ...int) Layout {
	return Layout{
		GroupSizes:    sizes,
		Quarterfinals: winnersRunnersUpBestThirds,
		Semifinals:    quarterfinalWinners,
		Final:         semifinalWinners,
	}
}

func pairedGroups(sizes ...int) Layout {
	return Layout{
		GroupSizes:    sizes,
		Quarterfinals: crossGroupWinnersRunnersUp,
		Semifinals:    quarterfinalWinners,
		Final:         semifinalWinners,
	}
}

var layouts = map[int]Layout{
	4: {
		GroupSizes:      []int{4},
		Final:           singleGroupTopTwo,
		FinalFromGroups: true,
	},
	5: singleGroup(5),
	6: singleGroup(6),
	7: {
		GroupSizes:    []int{4, 3},
		Quarterfinals: sevenTeamQuarterfinals,
		Semifinals:    sevenTeamSemifinals,
		Final:         semifinalWinners,
	},
	8:  twoGroups(4, 4),
	9:  twoGroups(4, 5),
	10: twoGroups(5, 5),
	11: {
		GroupSizes:           []int{5, 6},
		Quarterfinals:        twoGroupCross,
		Semifinals:           twoGroupTopFour,
		SemifinalsFromGroups: true,
		Final:                semifinalWinners,
	},
	12: bestThirdGroups(4, 4, 4),
	13: bestThirdGroups(4, 4, 5),
	14: withInterzonal(pairedGroups(4, 4, 3, 3), 2, 3),
	15: bestThirdGroups(5, 5, 5),
	16: pairedGroups(4, 4, 4, 4),
}

func withInterzonal(l Layout, a, b int) Layout {
	l.InterzonalGroups = []int{a, b}
	return l
}

// LayoutFor returns the table row for n teams, or the generic layout for
// rosters larger than the table.
func LayoutFor(n int) Layout {
	if l, ok := layouts[n]; ok {
		return l
	}
	return fallbackLayout(n)
}

func fallbackLayout(n int) Layout {
	groups := 4
	if n > 20 {
		groups = 5
	}
	base := n / groups
	if base < 3 {
		groups = n / 3
		base = n / groups
	}

	sizes := make([]int, groups)
	for i := range sizes {
		sizes[i] = base
	}
	for i := 0; i < n-base*groups; i++ {
		sizes[i%groups]++
	}

	quarterfinals := crossGroupWinnersRunnersUp
	if groups == 5 {
		quarterfinals = fiveGroupSeeds
	}
	return Layout{
		GroupSizes:      sizes,
		Quarterfinals:   quarterfinals,
		Semifinals:      quarterfinalWinners,
		Final:           semifinalWinners,
		spreadRemainder: true,
	}
}

// slice distributes the roster, in the given order, over the layout's groups.
func (l Layout) slice(teamIDs []string) [][]string {
	members := make([][]string, len(l.GroupSizes))
	if !l.spreadRemainder {
		start := 0
		for i, size := range l.GroupSizes {
			members[i] = append([]string(nil), teamIDs[start:start+size]...)
			start += size
		}
		return members
	}

	base := len(teamIDs) / len(l.GroupSizes)
	for i := range members {
		members[i] = append([]string(nil), teamIDs[i*base:(i+1)*base]...)
	}
	for i, id := range teamIDs[base*len(l.GroupSizes):] {
		g := i % len(members)
		members[g] = append(members[g], id)
	}
	return members
}
