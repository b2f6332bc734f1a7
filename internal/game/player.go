package game

import "github.com/google/uuid"

// Conn is the transport handle for one player. The room emits while holding
// its lock, so implementations must queue without blocking.
type Conn interface {
	Send(msg any)
	Close()
}

// Player is one participant's record. It survives disconnects (only the
// connection handle is dropped) and is removed only by a kick or room
// teardown. The unexported conn keeps the handle off the wire.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	Order     int    `json:"order"`
	IsHost    bool   `json:"isHost"`

	conn Conn
}

func newPlayer(name string, conn Conn, order int, isHost bool) *Player {
	return &Player{
		ID:        uuid.New().String(),
		Name:      name,
		Connected: true,
		Order:     order,
		IsHost:    isHost,
		conn:      conn,
	}
}

func (p *Player) send(msg any) {
	if p.conn != nil && p.Connected {
		p.conn.Send(msg)
	}
}
