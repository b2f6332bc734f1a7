package db

import (
	"fmt"

	"github.com/google/uuid"

	"huesandcues/internal/game"
)

// RecordResult writes one finished game and its per-player final scores.
func (d *DB) RecordResult(res game.Result) error {
	gameID := uuid.New().String()

	winnerName := ""
	for _, p := range res.Players {
		if p.Winner {
			winnerName = p.Name
		}
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning result tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO games (id, room_code, rounds, winner_name)
		VALUES ($1, $2, $3, $4)
	`, gameID, res.RoomCode, res.Rounds, winnerName); err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	for _, p := range res.Players {
		if _, err := tx.Exec(`
			INSERT INTO game_players (game_id, player_id, name, final_score, is_winner)
			VALUES ($1, $2, $3, $4, $5)
		`, gameID, p.ID, p.Name, p.Score, p.Winner); err != nil {
			return fmt.Errorf("inserting game player: %w", err)
		}
	}

	return tx.Commit()
}

// LeaderboardEntry is one row of the all-time leaderboard, grouped by
// player name across recorded games.
type LeaderboardEntry struct {
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
}

func (d *DB) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := d.conn.Query(`
		SELECT name,
		       SUM(final_score) AS total_points,
		       COUNT(*) AS games_played,
		       COUNT(*) FILTER (WHERE is_winner) AS wins
		FROM game_players
		GROUP BY name
		ORDER BY total_points DESC, wins DESC, name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.TotalPoints, &e.GamesPlayed, &e.Wins); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
