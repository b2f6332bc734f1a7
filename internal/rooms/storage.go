package rooms

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"huesandcues/internal/game"
)

const (
	// Rooms with zero connected players for this long are reaped.
	reapIdle    = 15 * time.Minute
	sweepPeriod = 5 * time.Minute

	codeAttempts = 1000
)

// Store is the room registry: it creates rooms under unique codes, routes
// lookups, and reaps abandoned rooms in the background. It takes no part
// in game logic.
type Store struct {
	mu       sync.Mutex
	rooms    map[string]*game.Room
	defaults game.Settings
	onResult func(game.Result)
	done     chan struct{}
}

// NewStore creates a registry whose rooms start from defaults. onResult
// (optional) is handed to each room for finished-game recording.
func NewStore(defaults game.Settings, onResult func(game.Result)) *Store {
	s := &Store{
		rooms:    make(map[string]*game.Room),
		defaults: defaults,
		onResult: onResult,
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Create allocates a room under a fresh code. Code-space exhaustion after
// the retry bound is a capacity error, not something a client can fix.
func (s *Store) Create() (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range codeAttempts {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		room := game.NewRoom(code, s.defaults, nil, s.onResult)
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after %d attempts", codeAttempts)
}

// Get looks up a room by code, case-insensitively.
func (s *Store) Get(code string) *game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[strings.ToUpper(strings.TrimSpace(code))]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	room := s.rooms[code]
	delete(s.rooms, code)
	s.mu.Unlock()

	if room != nil {
		room.Close()
	}
}

func (s *Store) List() []*game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*game.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

// Close stops the sweeper and cancels every room's pending timer.
func (s *Store) Close() {
	close(s.done)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		r.Close()
	}
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for code, room := range s.rooms {
				if room.Reapable(now, reapIdle) {
					room.Close()
					delete(s.rooms, code)
					log.Printf("[Rooms] reaped abandoned room %s\n", code)
				}
			}
			s.mu.Unlock()
		}
	}
}
