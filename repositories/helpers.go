package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

func decodeTournament(data []byte) (*models.Tournament, error) {
	var t models.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	return &t, nil
}

func scanTournaments(rows *sql.Rows) ([]*models.Tournament, error) {
	tournaments := []*models.Tournament{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		t, err := decodeTournament(data)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}
