package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/coder/websocket"

	"huesandcues/internal/game"
)

const sendBuffer = 256

// client adapts one WebSocket connection to game.Conn. Send queues without
// blocking because the room emits while holding its lock; the write pump
// drains the queue onto the socket.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer)}
}

func (c *client) Send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] marshal error: %v\n", err)
		return
	}
	select {
	case c.send <- data:
	default:
		// Drop rather than block the room; a client this far behind can
		// rejoin for a fresh snapshot.
	}
}

func (c *client) Close() {
	c.once.Do(func() {
		c.conn.Close(websocket.StatusPolicyViolation, "removed from room")
	})
}

// WritePump reads from the send channel and writes to the connection.
func (c *client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}

// handleWS owns one connection's lifetime. The first message must bind the
// connection to a room (create, join, or rejoin); everything after that is
// routed to the bound room, and the room is told when the socket drops.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		log.Printf("[WS] accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	c := newClient(conn)
	go c.WritePump(ctx)

	var room *game.Room
	var playerID string
	defer func() {
		if room != nil && playerID != "" {
			room.Disconnect(playerID)
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var msg game.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.Send(game.Error("Invalid JSON"))
			continue
		}

		if room == nil {
			switch msg.Type {
			case game.MsgCreateRoom:
				room, playerID = s.createRoom(c, msg)
			case game.MsgJoinRoom:
				room, playerID = s.joinRoom(c, msg)
			case game.MsgRejoinRoom:
				room, playerID = s.rejoinRoom(c, msg)
			default:
				c.Send(game.Error("First message must be CREATE_ROOM, JOIN_ROOM, or REJOIN_ROOM"))
			}
			continue
		}

		room.HandleMessage(playerID, msg)
	}
}

func (s *Server) createRoom(c *client, msg game.ClientMessage) (*game.Room, string) {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		c.Send(game.Error("Player name is required"))
		return nil, ""
	}

	room, err := s.Rooms.Create()
	if err != nil {
		log.Printf("[WS] create room: %v\n", err)
		c.Send(game.Error("Failed to create room"))
		return nil, ""
	}

	p, joined, err := room.Join(name, c)
	if err != nil {
		c.Send(game.Error(err.Error()))
		return nil, ""
	}

	c.Send(game.RoomCreatedMsg{
		Type:     game.MsgRoomCreated,
		RoomCode: room.Code,
		PlayerID: p.ID,
		Settings: joined.State.Settings,
		Players:  joined.State.Players,
	})
	log.Printf("[WS] created room %s\n", room.Code)
	return room, p.ID
}

func (s *Server) joinRoom(c *client, msg game.ClientMessage) (*game.Room, string) {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		c.Send(game.Error("Player name is required"))
		return nil, ""
	}

	room := s.Rooms.Get(msg.RoomCode)
	if room == nil {
		c.Send(game.Error("Room not found"))
		return nil, ""
	}

	p, joined, err := room.Join(name, c)
	if err != nil {
		c.Send(game.Error(err.Error()))
		return nil, ""
	}

	c.Send(joined)
	return room, p.ID
}

func (s *Server) rejoinRoom(c *client, msg game.ClientMessage) (*game.Room, string) {
	room := s.Rooms.Get(msg.RoomCode)
	if room == nil || !room.Reconnect(msg.PlayerID, c) {
		c.Send(game.Error("Room or player not found"))
		return nil, ""
	}
	return room, msg.PlayerID
}
