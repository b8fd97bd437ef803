package state

import (
	"encoding/json"
	"strconv"

	"github.com/BennettDISH/admiral-undersea/game"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/network"
)

// PlayingState routes in-game intents into the turn engine. A player with
// no team assignment gets nothing through.
type PlayingState struct {
	RoomStateBase
	engine *game.Engine
}

func NewPlayingState(room RoomContext, engine *game.Engine) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{
			ID:   "playing",
			Room: room,
		},
		engine: engine,
	}
}

func (s *PlayingState) OnEnter() {
	logger.Log.Infof("Game %s is now playing", s.Room.GetCode())
}

func (s *PlayingState) HandleAction(player Player, msgID uint16, data []byte) error {
	team := player.Team()
	if !team.Valid() {
		return ErrActionNotAllowed
	}
	code := s.Room.GetCode()

	switch msgID {
	case network.MsgTypeCaptainMove:
		var req network.CaptainMoveRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		return s.engine.SubmitMove(code, team, req.Direction)

	case network.MsgTypeAyeCaptain:
		var req network.AyeCaptainRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		actor := strconv.FormatInt(player.GetUserID(), 10)
		return s.engine.ConfirmRole(code, team, req.Role, actor)

	case network.MsgTypeChargeSystem:
		var req network.ChargeSystemRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		return s.engine.ChargeSystem(code, team, req.System)

	case network.MsgTypeMarkDamage:
		var req network.MarkDamageRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		_, err := s.engine.MarkDamage(code, team, req.SlotID, req.Direction)
		return err

	case network.MsgTypeFireTorpedo:
		var req network.FireTorpedoRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		target := game.Position{X: req.Target.X, Y: req.Target.Y}
		return s.engine.FireTorpedo(code, team, target)

	case network.MsgTypeSetAutomatedRoles:
		var req network.SetAutomatedRolesRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		s.engine.SetAutomatedRoles(code, req.Team, req.AutomatedRoles)
		return nil

	case network.MsgTypeSetSystemPriority:
		var req network.SetSystemPriorityRequest
		if err := unmarshalValid(data, &req); err != nil {
			return err
		}
		s.engine.SetSystemPriority(code, req.Team, req.SystemPriority)
		return nil
	}
	return ErrActionNotAllowed
}

type validator interface {
	Validate() error
}

func unmarshalValid(data []byte, req validator) error {
	if err := json.Unmarshal(data, req); err != nil {
		return err
	}
	return req.Validate()
}
