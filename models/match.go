package models

type Round string

const (
	RoundGroup        Round = "group"
	RoundInterzonal   Round = "interzonal"
	RoundQuarterfinal Round = "quarterfinal"
	RoundSemifinal    Round = "semifinal"
	RoundFinal        Round = "final"
)

func (r Round) Valid() bool {
	switch r {
	case RoundGroup, RoundInterzonal, RoundQuarterfinal, RoundSemifinal, RoundFinal:
		return true
	}
	return false
}

// IsElimination reports whether matches of this round are knockout matches.
func (r Round) IsElimination() bool {
	return r == RoundQuarterfinal || r == RoundSemifinal || r == RoundFinal
}

// Match references its teams by id; both ids belong to the owning tournament's roster.
type Match struct {
	ID          string  `json:"id"`
	Team1ID     string  `json:"team1_id"`
	Team2ID     string  `json:"team2_id"`
	Team1Score  *int    `json:"team1_score,omitempty"`
	Team2Score  *int    `json:"team2_score,omitempty"`
	WinnerID    *string `json:"winner_id,omitempty"`
	IsCompleted bool    `json:"is_completed"`
	Round       Round   `json:"round"`
	GroupID     *string `json:"group_id,omitempty"`
}

// Complete stores the score and marks the higher scorer as winner.
// Callers must reject equal scores beforehand.
func (m *Match) Complete(team1Score, team2Score int) {
	s1, s2 := team1Score, team2Score
	m.Team1Score = &s1
	m.Team2Score = &s2

	winner := m.Team2ID
	if s1 > s2 {
		winner = m.Team1ID
	}
	m.WinnerID = &winner
	m.IsCompleted = true
}

func (m *Match) Involves(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// Winner returns the winning team id, or "" while the match is open.
func (m *Match) Winner() string {
	if !m.IsCompleted || m.WinnerID == nil {
		return ""
	}
	return *m.WinnerID
}
