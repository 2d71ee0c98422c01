package models

// TeamStats is derived from completed matches on every query and never stored.
type TeamStats struct {
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	TotalMatches    int     `json:"total_matches"`
	WinPercentage   float64 `json:"win_percentage"`
	GamesFor        int     `json:"games_for"`
	GamesAgainst    int     `json:"games_against"`
	GamesDifference int     `json:"games_difference"`
}
