package network

import (
	"errors"

	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Typed request payloads for every inbound intent. The gateway validates a
// payload fully before anything is dispatched into the game core, so the
// core never sees a malformed team, role, direction or slot id.

var (
	ErrMissingGameCode  = errors.New("game code required")
	ErrInvalidTeam      = errors.New("invalid team")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidSystem    = errors.New("invalid system")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidSlot      = errors.New("invalid slot id")
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type JoinGameRequest struct {
	GameCode string `json:"gameCode"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (r *JoinGameRequest) Validate() error {
	if r.GameCode == "" {
		return ErrMissingGameCode
	}
	return nil
}

type SelectTeamRequest struct {
	Team catalog.Team `json:"team"`
}

func (r *SelectTeamRequest) Validate() error {
	if !r.Team.Valid() {
		return ErrInvalidTeam
	}
	return nil
}

type SelectRolesRequest struct {
	Roles []catalog.Role `json:"roles"`
}

func (r *SelectRolesRequest) Validate() error {
	for _, role := range r.Roles {
		if !role.Valid() {
			return ErrInvalidRole
		}
	}
	return nil
}

type StartGameRequest struct{}

func (r *StartGameRequest) Validate() error { return nil }

type CaptainMoveRequest struct {
	Direction catalog.Direction `json:"direction"`
}

func (r *CaptainMoveRequest) Validate() error {
	if !r.Direction.Valid() {
		return ErrInvalidDirection
	}
	return nil
}

type AyeCaptainRequest struct {
	Role catalog.Role `json:"role"`
}

func (r *AyeCaptainRequest) Validate() error {
	if !r.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

type ChargeSystemRequest struct {
	System catalog.System `json:"system"`
}

func (r *ChargeSystemRequest) Validate() error {
	if !r.System.Valid() {
		return ErrInvalidSystem
	}
	return nil
}

type MarkDamageRequest struct {
	SlotID    string            `json:"slotId"`
	Direction catalog.Direction `json:"direction"`
}

func (r *MarkDamageRequest) Validate() error {
	if !r.Direction.Valid() {
		return ErrInvalidDirection
	}
	if _, ok := catalog.SlotByID(r.SlotID); !ok {
		return ErrInvalidSlot
	}
	return nil
}

type FireTorpedoRequest struct {
	Target Coord `json:"target"`
}

func (r *FireTorpedoRequest) Validate() error { return nil }

type SetAutomatedRolesRequest struct {
	Team           catalog.Team   `json:"team"`
	AutomatedRoles []catalog.Role `json:"automatedRoles"`
}

func (r *SetAutomatedRolesRequest) Validate() error {
	if !r.Team.Valid() {
		return ErrInvalidTeam
	}
	for _, role := range r.AutomatedRoles {
		if !role.Valid() || role == catalog.RoleCaptain {
			return ErrInvalidRole
		}
	}
	return nil
}

type SetSystemPriorityRequest struct {
	Team           catalog.Team     `json:"team"`
	SystemPriority []catalog.System `json:"systemPriority"`
}

func (r *SetSystemPriorityRequest) Validate() error {
	if !r.Team.Valid() {
		return ErrInvalidTeam
	}
	for _, s := range r.SystemPriority {
		if !s.Valid() {
			return ErrInvalidSystem
		}
	}
	return nil
}
