package room

import (
	"net"
	"testing"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
	"github.com/BennettDISH/admiral-undersea/session"
	"github.com/BennettDISH/admiral-undersea/state"
)

// MockBroadcaster is a test double for the Broadcaster interface.
type MockBroadcaster struct {
	RoomMessages int
}

func (m *MockBroadcaster) BroadcastToRoom(code string, msgID uint16, data []byte) error {
	m.RoomMessages++
	return nil
}

func (m *MockBroadcaster) BroadcastToTeam(code string, team catalog.Team, msgID uint16, data []byte) error {
	return nil
}

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

// idleState is a minimal lifecycle state for room tests.
type idleState struct {
	state.RoomStateBase
}

func newIdleState(room state.RoomContext) state.State {
	return &idleState{RoomStateBase: state.RoomStateBase{ID: "idle", Room: room}}
}

// newTestSession creates a dummy session for testing purposes.
func newTestSession(id string) *session.Session {
	return session.NewSession(id, &MockConnection{})
}

func TestRoomManager_FindOrCreate(t *testing.T) {
	manager := NewRoomManager()
	mockBroadcaster := &MockBroadcaster{}

	room := manager.FindOrCreate("ABC123", MaxCrew, mockBroadcaster, newIdleState)
	if room == nil {
		t.Fatal("FindOrCreate should not return nil")
	}
	if room.Code != "ABC123" {
		t.Errorf("Expected room code ABC123, got %s", room.Code)
	}

	again := manager.FindOrCreate("ABC123", MaxCrew, mockBroadcaster, newIdleState)
	if again != room {
		t.Error("FindOrCreate should return the existing room for a known code")
	}

	retrieved, exists := manager.GetRoom("ABC123")
	if !exists {
		t.Fatal("GetRoom should find the created room")
	}
	if retrieved != room {
		t.Error("GetRoom should return the same room instance")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected one room, got %d", manager.Count())
	}
}

func TestRoom_AddPlayer(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("ADD001", 2, mockBroadcaster, newIdleState)

	player1 := newTestSession("player1")

	added := room.AddPlayer(player1)
	if !added {
		t.Fatal("Failed to add first player")
	}

	if room.PlayerCount() != 1 {
		t.Errorf("Expected player count to be 1, got %d", room.PlayerCount())
	}
	if player1.GameCode != "ADD001" {
		t.Errorf("Joining should stamp the game code on the session, got %q", player1.GameCode)
	}
	if _, exists := room.GetPlayer(player1.GetID()); !exists {
		t.Error("Player was not correctly added to the room's player map")
	}
}

func TestRoom_AddPlayer_Full(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("FULL01", 1, mockBroadcaster, newIdleState)

	player1 := newTestSession("player1")
	player2 := newTestSession("player2")

	// Add first player, should succeed
	if !room.AddPlayer(player1) {
		t.Fatal("Failed to add the first player")
	}

	// Add second player, should fail
	if room.AddPlayer(player2) {
		t.Fatal("Should not be able to add a player to a full room")
	}

	if room.PlayerCount() != 1 {
		t.Errorf("Expected player count to be 1 after trying to add to a full room, got %d", room.PlayerCount())
	}
}

func TestRoom_RemovePlayer(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("REM001", 2, mockBroadcaster, newIdleState)

	player1 := newTestSession("player1")
	room.AddPlayer(player1)

	room.RemovePlayer(player1.GetID())

	if room.PlayerCount() != 0 {
		t.Errorf("Expected player count to be 0 after removing player, got %d", room.PlayerCount())
	}
	if player1.GameCode != "" {
		t.Errorf("Leaving should clear the session's game code, got %q", player1.GameCode)
	}
}

func TestRoom_GetTeamSessions(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("TEAM01", MaxCrew, mockBroadcaster, newIdleState)

	alpha1 := newTestSession("alpha1")
	alpha1.SetTeam(catalog.TeamAlpha)
	alpha2 := newTestSession("alpha2")
	alpha2.SetTeam(catalog.TeamAlpha)
	bravo1 := newTestSession("bravo1")
	bravo1.SetTeam(catalog.TeamBravo)
	unassigned := newTestSession("spectator")

	for _, s := range []*session.Session{alpha1, alpha2, bravo1, unassigned} {
		room.AddPlayer(s)
	}

	if got := len(room.GetTeamSessions(catalog.TeamAlpha)); got != 2 {
		t.Errorf("Expected 2 alpha sessions, got %d", got)
	}
	if got := len(room.GetTeamSessions(catalog.TeamBravo)); got != 1 {
		t.Errorf("Expected 1 bravo session, got %d", got)
	}
}

func TestRoom_PhaseTracksStateMachine(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("PHS001", MaxCrew, mockBroadcaster, newIdleState)

	if room.Phase() != "idle" {
		t.Errorf("Expected initial phase idle, got %s", room.Phase())
	}

	next := &idleState{RoomStateBase: state.RoomStateBase{ID: "next", Room: room}}
	if err := room.ChangeState(next); err != nil {
		t.Fatalf("ChangeState failed: %v", err)
	}
	if room.Phase() != "next" {
		t.Errorf("Expected phase next after transition, got %s", room.Phase())
	}
}

func TestRoom_BroadcastMarshalsPayload(t *testing.T) {
	mockBroadcaster := &MockBroadcaster{}
	room := NewRoom("BRD001", MaxCrew, mockBroadcaster, newIdleState)

	payload := map[string]string{"hello": "crew"}
	if err := room.Broadcast(301, payload); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}
	if mockBroadcaster.RoomMessages != 1 {
		t.Errorf("Expected one room broadcast, got %d", mockBroadcaster.RoomMessages)
	}
}
