package server

import (
	"fmt"
	"log"
	"net/http"

	"huesandcues/internal/config"
	"huesandcues/internal/db"
	"huesandcues/internal/game"
	"huesandcues/internal/rooms"
)

func Run() error {
	cfg := config.Load()

	defaults := game.DefaultSettings()
	if cfg.PhaseTimerSeconds == 0 || cfg.PhaseTimerSeconds >= 10 {
		defaults.PhaseTimerSeconds = cfg.PhaseTimerSeconds
	}

	srv := &Server{BaseURL: cfg.BaseURL}

	// Optional database connection
	var onResult func(game.Result)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			onResult = func(res game.Result) {
				if err := database.RecordResult(res); err != nil {
					log.Printf("[DB] RecordResult error: %v\n", err)
				}
			}
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	srv.Rooms = rooms.NewStore(defaults, onResult)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/board", srv.handleBoard)
	mux.HandleFunc("GET /rooms/{code}/qr.png", srv.handleRoomQR)
	mux.HandleFunc("/leaderboard", srv.handleLeaderboard)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, mux)
}
