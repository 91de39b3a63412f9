package player

import "sync"

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents the person at the other end of a session.
type Player struct {
	ID   string
	Conn Connection

	writeMu sync.Mutex
}

func NewPlayer(id string, conn Connection) *Player {
	return &Player{ID: id, Conn: conn}
}

// Send writes one message. Writes from the read loop, the heartbeat and
// deferred computer moves are serialized here since a websocket connection
// allows only one concurrent writer.
func (p *Player) Send(messageType int, data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(messageType, data)
}
