// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"
	"errors"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/room"
	"github.com/BennettDISH/admiral-undersea/session"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Broadcaster fans a message out to one of the three audience scopes:
// the whole room, one team's side of it, or a single socket.
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
	BroadcastToTeam(code string, team catalog.Team, msgID uint16, data []byte) error
	BroadcastToSession(sessionID string, msgID uint16, data []byte) error
}

type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(code string, msgID uint16, data []byte) error {
	r, exists := b.roomManager.GetRoom(code)
	if !exists {
		return ErrRoomNotFound
	}

	for _, s := range r.GetSessions() {
		if err := s.Send(msgID, data); err != nil {
			// A dead socket is cleaned up by its own read loop.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToTeam(code string, team catalog.Team, msgID uint16, data []byte) error {
	r, exists := b.roomManager.GetRoom(code)
	if !exists {
		return ErrRoomNotFound
	}

	for _, s := range r.GetTeamSessions(team) {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToSession(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(msgID, data)
}

// --- game.Publisher ---

// ToRoom marshals a payload and delivers it to everyone in the game.
func (b *RoomBroadcaster) ToRoom(code string, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal payload for msg %d: %v", msgID, err)
		return
	}
	if err := b.BroadcastToRoom(code, msgID, data); err != nil {
		logger.Log.Warnf("Broadcast to room %s failed: %v", code, err)
	}
}

// ToTeam marshals a payload and delivers it to one team's sessions only.
func (b *RoomBroadcaster) ToTeam(code string, team catalog.Team, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal payload for msg %d: %v", msgID, err)
		return
	}
	if err := b.BroadcastToTeam(code, team, msgID, data); err != nil {
		logger.Log.Warnf("Broadcast to team %s of %s failed: %v", team, code, err)
	}
}
