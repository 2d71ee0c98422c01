package models

import "fmt"

// Player is one half of a doubles pair.
type Player struct {
	ID      string `json:"id"`
	Surname string `json:"surname"`
}

// Team is a pair of players entered into a single tournament.
type Team struct {
	ID      string `json:"id"`
	Player1 Player `json:"player1"`
	Player2 Player `json:"player2"`
	Name    string `json:"name"`
}

// TeamName builds the display name of a pair, e.g. "Galan & Lebron".
func TeamName(p1, p2 Player) string {
	return fmt.Sprintf("%s & %s", p1.Surname, p2.Surname)
}
