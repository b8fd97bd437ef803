package state

import (
	"encoding/json"

	"github.com/BennettDISH/admiral-undersea/game"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/network"
)

// GameStarter flips the persisted game row to playing. Failures are logged
// and ignored; the in-memory session stays authoritative.
type GameStarter interface {
	MarkStarted(code string) error
}

// LobbyState accepts automation configuration and the start-game intent.
// Team and role selection are handled at the gateway because they touch
// persistence and session identity, not game state.
type LobbyState struct {
	RoomStateBase
	engine  *game.Engine
	starter GameStarter
}

func NewLobbyState(room RoomContext, engine *game.Engine, starter GameStarter) *LobbyState {
	return &LobbyState{
		RoomStateBase: RoomStateBase{
			ID:   "lobby",
			Room: room,
		},
		engine:  engine,
		starter: starter,
	}
}

func (s *LobbyState) OnEnter() {
	logger.Log.Infof("Game %s waiting in lobby", s.Room.GetCode())
}

func (s *LobbyState) HandleAction(player Player, msgID uint16, data []byte) error {
	switch msgID {
	case network.MsgTypeSetAutomatedRoles:
		var req network.SetAutomatedRolesRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}
		s.engine.SetAutomatedRoles(s.Room.GetCode(), req.Team, req.AutomatedRoles)
		return nil

	case network.MsgTypeSetSystemPriority:
		var req network.SetSystemPriorityRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}
		s.engine.SetSystemPriority(s.Room.GetCode(), req.Team, req.SystemPriority)
		return nil

	case network.MsgTypeStartGame:
		return s.startGame()
	}
	return ErrActionNotAllowed
}

func (s *LobbyState) startGame() error {
	code := s.Room.GetCode()

	if s.starter != nil {
		if err := s.starter.MarkStarted(code); err != nil {
			logger.Log.Errorf("Failed to persist game start for %s: %v", code, err)
		}
	}

	// Resets in-memory state (preserving lobby automation settings) and
	// pushes each team its starting view.
	s.engine.StartGame(code)

	return s.Room.ChangeState(NewPlayingState(s.Room, s.engine))
}
