package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

// pairing is one knockout match to create: team ids in team1, team2 order.
type pairing [2]string

// seedingRule builds the pairings of a knockout round from the current state.
type seedingRule func(t *models.Tournament) ([]pairing, error)

// rankings returns every group's team ids in standings order, in group order.
func rankings(t *models.Tournament) [][]string {
	out := make([][]string, len(t.Groups))
	for i, g := range t.Groups {
		out[i] = rankedTeamIDs(t, g)
	}
	return out
}

func place(ranked [][]string, group, position int) (string, error) {
	if group >= len(ranked) || position >= len(ranked[group]) {
		return "", fmt.Errorf("%w: group %d has no position %d", ErrMissingQualifier, group+1, position+1)
	}
	return ranked[group][position], nil
}

// seed resolves (group, position) coordinates into pairings.
func seed(t *models.Tournament, coords ...[4]int) ([]pairing, error) {
	ranked := rankings(t)
	pairs := make([]pairing, 0, len(coords))
	for _, c := range coords {
		home, err := place(ranked, c[0], c[1])
		if err != nil {
			return nil, err
		}
		away, err := place(ranked, c[2], c[3])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pairing{home, away})
	}
	return pairs, nil
}

// winners returns the winner of every match in order; all must be completed.
func winners(matches []*models.Match) ([]string, error) {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		w := m.Winner()
		if w == "" {
			return nil, fmt.Errorf("%w: match %s has no winner", ErrMissingQualifier, m.ID)
		}
		out = append(out, w)
	}
	return out, nil
}

func pairSequentially(ids []string) ([]pairing, error) {
	if len(ids) < 2 || len(ids)%2 != 0 {
		return nil, fmt.Errorf("%w: cannot pair %d teams", ErrMissingQualifier, len(ids))
	}
	pairs := make([]pairing, 0, len(ids)/2)
	for i := 0; i < len(ids); i += 2 {
		pairs = append(pairs, pairing{ids[i], ids[i+1]})
	}
	return pairs, nil
}

func singleGroupTopTwo(t *models.Tournament) ([]pairing, error) {
	return seed(t, [4]int{0, 0, 0, 1})
}

func singleGroupOneVsFour(t *models.Tournament) ([]pairing, error) {
	return seed(t, [4]int{0, 0, 0, 3}, [4]int{0, 1, 0, 2})
}

// twoGroupTopFour collects ranks 1 to 4 of both groups in group order and
// pairs them as listed: A1 v A2, A3 v A4, B1 v B2, B3 v B4.
func twoGroupTopFour(t *models.Tournament) ([]pairing, error) {
	ranked := rankings(t)
	if len(ranked) < 2 {
		return nil, fmt.Errorf("%w: need 2 groups, have %d", ErrMissingQualifier, len(ranked))
	}
	ids := make([]string, 0, 8)
	for g := 0; g < 2; g++ {
		for pos := 0; pos < 4; pos++ {
			id, err := place(ranked, g, pos)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return pairSequentially(ids)
}

func twoGroupCross(t *models.Tournament) ([]pairing, error) {
	return seed(t,
		[4]int{0, 0, 1, 3},
		[4]int{0, 1, 1, 2},
		[4]int{1, 0, 0, 3},
		[4]int{1, 1, 0, 2},
	)
}

// sevenTeamQuarterfinals leaves A1 out; it waits in the semifinals.
func sevenTeamQuarterfinals(t *models.Tournament) ([]pairing, error) {
	return seed(t,
		[4]int{0, 1, 1, 0},
		[4]int{0, 2, 1, 1},
		[4]int{0, 3, 1, 2},
	)
}

func sevenTeamSemifinals(t *models.Tournament) ([]pairing, error) {
	ranked := rankings(t)
	top, err := place(ranked, 0, 0)
	if err != nil {
		return nil, err
	}
	qf, err := winners(t.Quarterfinals)
	if err != nil {
		return nil, err
	}
	if len(qf) < 3 {
		return nil, fmt.Errorf("%w: need 3 quarterfinal winners, have %d", ErrMissingQualifier, len(qf))
	}
	return []pairing{{top, qf[0]}, {qf[1], qf[2]}}, nil
}

// winnersRunnersUpBestThirds seeds three groups: the three winners, the three
// runners-up and the two best third-placed teams. A group with fewer than 3
// teams has no third.
func winnersRunnersUpBestThirds(t *models.Tournament) ([]pairing, error) {
	if len(t.Groups) < 3 {
		return nil, fmt.Errorf("%w: need 3 groups, have %d", ErrMissingQualifier, len(t.Groups))
	}
	var firsts, seconds []string
	var thirds []models.TeamStats
	for _, g := range t.Groups {
		stats := groupStandings(t, g)
		if len(stats) < 2 {
			return nil, fmt.Errorf("%w: %s has only %d teams", ErrMissingQualifier, g.Name, len(stats))
		}
		firsts = append(firsts, stats[0].TeamID)
		seconds = append(seconds, stats[1].TeamID)
		if len(stats) >= 3 {
			thirds = append(thirds, stats[2])
		}
	}
	if len(thirds) < 2 {
		return nil, fmt.Errorf("%w: need 2 third-placed teams, have %d", ErrMissingQualifier, len(thirds))
	}
	sort.SliceStable(thirds, func(i, j int) bool { return ranksAbove(thirds[i], thirds[j]) })

	return []pairing{
		{firsts[0], thirds[0].TeamID},
		{firsts[1], thirds[1].TeamID},
		{firsts[2], seconds[0]},
		{seconds[1], seconds[2]},
	}, nil
}

// crossGroupWinnersRunnersUp pairs groups two by two, each winner meeting the
// runner-up of its partner group. Winners of partner groups land in opposite
// halves of the bracket.
func crossGroupWinnersRunnersUp(t *models.Tournament) ([]pairing, error) {
	n := len(t.Groups)
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("%w: need an even number of groups, have %d", ErrMissingQualifier, n)
	}
	var coords [][4]int
	for i := 0; i < n; i += 2 {
		coords = append(coords, [4]int{i, 0, i + 1, 1})
	}
	for i := 0; i < n; i += 2 {
		coords = append(coords, [4]int{i + 1, 0, i, 1})
	}
	pairs, err := seed(t, coords...)
	if err != nil {
		return nil, err
	}
	if err := assertCrossGroup(t, pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// fiveGroupSeeds ranks the five winners and the three best runners-up into
// seeds 1 to 8 and plays 1v8, 2v7, 3v6, 4v5. A winner drawn against its own
// runner-up swaps opponents with the nearest pairing that removes the clash.
func fiveGroupSeeds(t *models.Tournament) ([]pairing, error) {
	var firsts, seconds []models.TeamStats
	for _, g := range t.Groups {
		stats := groupStandings(t, g)
		if len(stats) < 2 {
			return nil, fmt.Errorf("%w: %s has only %d teams", ErrMissingQualifier, g.Name, len(stats))
		}
		firsts = append(firsts, stats[0])
		seconds = append(seconds, stats[1])
	}
	if len(firsts)+len(seconds) < 8 {
		return nil, fmt.Errorf("%w: need 8 qualifiers, have %d", ErrMissingQualifier, len(firsts)+len(seconds))
	}
	byRank := func(s []models.TeamStats) {
		sort.SliceStable(s, func(i, j int) bool { return ranksAbove(s[i], s[j]) })
	}
	byRank(firsts)
	byRank(seconds)

	seeds := append(firsts, seconds...)[:8]
	pairs := make([]pairing, 0, 4)
	for i := 0; i < 4; i++ {
		pairs = append(pairs, pairing{seeds[i].TeamID, seeds[7-i].TeamID})
	}
	for i := range pairs {
		if !sameGroup(t, pairs[i][0], pairs[i][1]) {
			continue
		}
		for j := range pairs {
			if j == i {
				continue
			}
			if !sameGroup(t, pairs[i][0], pairs[j][1]) && !sameGroup(t, pairs[j][0], pairs[i][1]) {
				pairs[i][1], pairs[j][1] = pairs[j][1], pairs[i][1]
				break
			}
		}
	}
	if err := assertCrossGroup(t, pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func quarterfinalWinners(t *models.Tournament) ([]pairing, error) {
	ids, err := winners(t.Quarterfinals)
	if err != nil {
		return nil, err
	}
	return pairSequentially(ids)
}

func semifinalWinners(t *models.Tournament) ([]pairing, error) {
	ids, err := winners(t.Semifinals)
	if err != nil {
		return nil, err
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: need 2 semifinal winners, have %d", ErrMissingQualifier, len(ids))
	}
	return []pairing{{ids[0], ids[1]}}, nil
}

func sameGroup(t *models.Tournament, a, b string) bool {
	g := t.GroupOf(a)
	return g != nil && g.HasTeam(b)
}

// assertCrossGroup rejects pairings of two teams drawn into the same group.
func assertCrossGroup(t *models.Tournament, pairs []pairing) error {
	for _, p := range pairs {
		if sameGroup(t, p[0], p[1]) {
			return fmt.Errorf("%w: %s and %s are both in %s", ErrSeedingConflict, p[0], p[1], t.GroupOf(p[0]).Name)
		}
	}
	return nil
}
