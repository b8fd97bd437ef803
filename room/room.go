// Package room tracks which sockets are gathered around one game code and
// which team each belongs to, and owns the game's lifecycle state machine.
package room

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/session"
	"github.com/BennettDISH/admiral-undersea/state"
)

// MaxCrew is two teams of four roles.
const MaxCrew = 8

// Room is the connection set of one game.
type Room struct {
	Code         string
	MaxPlayers   int
	Players      map[string]*session.Session // sessionID -> session
	StateMachine state.StateMachine
	CreatedAt    time.Time

	broadcaster Broadcaster
	playerMutex sync.RWMutex
}

// NewRoom creates a room and enters its initial lifecycle state. The
// initial-state constructor gets the room as its context so states can
// drive transitions and broadcasts without importing this package.
func NewRoom(code string, maxPlayers int, broadcaster Broadcaster, initial func(state.RoomContext) state.State) *Room {
	room := &Room{
		Code:        code,
		MaxPlayers:  maxPlayers,
		Players:     make(map[string]*session.Session),
		CreatedAt:   time.Now(),
		broadcaster: broadcaster,
	}
	room.StateMachine = state.NewBaseStateMachine(initial(room))
	return room
}

// --- state.RoomContext ---

func (r *Room) GetCode() string {
	return r.Code
}

// GetPlayers returns the room's players as state.Player values, copied so
// states never see concurrent map writes.
func (r *Room) GetPlayers() map[string]state.Player {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	players := make(map[string]state.Player, len(r.Players))
	for k, v := range r.Players {
		players[k] = v
	}
	return players
}

func (r *Room) ChangeState(newState state.State) error {
	return r.StateMachine.ChangeState(newState)
}

// Broadcast sends a payload to every session in the room.
func (r *Room) Broadcast(msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.broadcaster.BroadcastToRoom(r.Code, msgID, data)
}

// --- membership ---

func (r *Room) AddPlayer(s *session.Session) bool {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if len(r.Players) >= r.MaxPlayers {
		return false
	}
	r.Players[s.ID] = s
	s.GameCode = r.Code
	return true
}

func (r *Room) RemovePlayer(sessionID string) {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if player, exists := r.Players[sessionID]; exists {
		player.GameCode = ""
		delete(r.Players, sessionID)
	}
}

func (r *Room) GetPlayer(sessionID string) (*session.Session, bool) {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	player, exists := r.Players[sessionID]
	return player, exists
}

// GetSessions returns every session in the room (thread-safe copy).
func (r *Room) GetSessions() []*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	sessions := make([]*session.Session, 0, len(r.Players))
	for _, s := range r.Players {
		sessions = append(sessions, s)
	}
	return sessions
}

// GetTeamSessions returns the sessions crewing one team, the team-room
// audience for scoped notifications.
func (r *Room) GetTeamSessions(team catalog.Team) []*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	var sessions []*session.Session
	for _, s := range r.Players {
		if s.Team() == team {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

func (r *Room) PlayerCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.Players)
}

// Phase is the id of the current lifecycle state (lobby/playing/finished).
func (r *Room) Phase() string {
	current := r.StateMachine.GetCurrentState()
	if current == nil {
		return ""
	}
	return current.GetID()
}

// --- manager ---

// Manager keeps every open room, keyed by game code.
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// FindOrCreate returns the room for a game code, creating it on the first
// join.
func (m *Manager) FindOrCreate(code string, maxPlayers int, broadcaster Broadcaster, initial func(state.RoomContext) state.State) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[code]; exists {
		return room
	}
	room := NewRoom(code, maxPlayers, broadcaster, initial)
	m.rooms[code] = room
	return room
}

func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[code]
	return room, exists
}

func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, code)
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}
