package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"huesandcues/internal/board"
	"huesandcues/internal/db"
	"huesandcues/internal/rooms"
)

type Server struct {
	Rooms   *rooms.Store
	DB      *db.DB // nil if no database configured
	BaseURL string
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}

// handleBoard serves the deterministic color grid so clients render the
// identical palette the server scores against.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	cols := queryInt(r, "cols", board.DefaultCols)
	rows := queryInt(r, "rows", board.DefaultRows)
	if cols < 1 || rows < 1 || cols*rows > 10000 {
		http.Error(w, "Invalid board dimensions", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(struct {
		Cols  int          `json:"cols"`
		Rows  int          `json:"rows"`
		Cells []board.Cell `json:"cells"`
	}{cols, rows, board.Generate(cols, rows)})
	if err != nil {
		log.Printf("[Board] encode error: %v\n", err)
	}
}

// handleRoomQR returns a QR code PNG of the join link for an existing room.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	if s.Rooms.Get(code) == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(s.BaseURL+"/?room="+code, qrcode.Medium, 256)
	if err != nil {
		log.Printf("[QR] encode error: %v\n", err)
		http.Error(w, "Error generating QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Leaderboard requires a database connection", http.StatusServiceUnavailable)
		return
	}

	limit := queryInt(r, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := s.DB.Leaderboard(limit)
	if err != nil {
		log.Printf("[Leaderboard] query error: %v\n", err)
		http.Error(w, "Error loading leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("[Leaderboard] encode error: %v\n", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
