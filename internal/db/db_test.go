package db

import (
	"os"
	"testing"

	"github.com/google/uuid"

	"huesandcues/internal/game"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		database.conn.Exec("DELETE FROM game_players")
		database.conn.Exec("DELETE FROM games")
		database.Close()
	})
	return database
}

func testResult(winner string) game.Result {
	ids := []string{uuid.New().String(), uuid.New().String(), uuid.New().String()}
	res := game.Result{
		RoomCode: "ABCD",
		Rounds:   3,
		WinnerID: ids[0],
		Players: []game.ResultPlayer{
			{ID: ids[0], Name: winner, Score: 9, Winner: true},
			{ID: ids[1], Name: "Bob", Score: 7},
			{ID: ids[2], Name: "Carol", Score: 4},
		},
	}
	return res
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate_TablesExist(t *testing.T) {
	database := getTestDB(t)

	for _, table := range []string{"games", "game_players"} {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestRecordResult(t *testing.T) {
	database := getTestDB(t)

	if err := database.RecordResult(testResult("Alice")); err != nil {
		t.Fatalf("RecordResult() error: %v", err)
	}

	var count int
	if err := database.conn.QueryRow("SELECT COUNT(*) FROM game_players").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("game_players rows = %d, want 3", count)
	}

	var winner string
	if err := database.conn.QueryRow("SELECT winner_name FROM games LIMIT 1").Scan(&winner); err != nil {
		t.Fatal(err)
	}
	if winner != "Alice" {
		t.Errorf("winner_name = %q, want Alice", winner)
	}
}

func TestLeaderboard(t *testing.T) {
	database := getTestDB(t)

	if err := database.RecordResult(testResult("Alice")); err != nil {
		t.Fatal(err)
	}
	if err := database.RecordResult(testResult("Alice")); err != nil {
		t.Fatal(err)
	}

	entries, err := database.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3 distinct names", len(entries))
	}
	if entries[0].Name != "Alice" || entries[0].TotalPoints != 18 || entries[0].Wins != 2 {
		t.Errorf("top entry = %+v, want Alice with 18 points and 2 wins", entries[0])
	}
	if entries[0].GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, want 2", entries[0].GamesPlayed)
	}
}
