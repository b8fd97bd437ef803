package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Outbound notification payloads. Audience scoping lives at the call site:
// whole-room events go out via Publisher.ToRoom, team-private ones via
// Publisher.ToTeam.

type MoveAnnouncedEvent struct {
	Team                 catalog.Team      `json:"team"`
	Direction            catalog.Direction `json:"direction"`
	AwaitingConfirmation bool              `json:"awaitingConfirmation"`
}

// PlayMoveSoundEvent goes to the enemy team only: the opposing side hears
// the move but never sees it.
type PlayMoveSoundEvent struct {
	Team      catalog.Team      `json:"team"`
	Direction catalog.Direction `json:"direction"`
}

type SystemChargedEvent struct {
	Team   catalog.Team   `json:"team"`
	System catalog.System `json:"system"`
	Value  int            `json:"value"`
}

type DamageMarkedEvent struct {
	Team              catalog.Team      `json:"team"`
	SlotID            string            `json:"slotId"`
	Direction         catalog.Direction `json:"direction"`
	CompletedCircuits []string          `json:"completedCircuits"`
	DamagedSlots      []string          `json:"damagedSlots"`
}

type RoleConfirmedEvent struct {
	Team  catalog.Team `json:"team"`
	Role  catalog.Role `json:"role"`
	Actor string       `json:"actor"` // user id, or "auto" for automation
}

type TurnCompleteEvent struct {
	Team catalog.Team `json:"team"`
}

type TorpedoHitEvent struct {
	Team        catalog.Team `json:"team"`
	Target      Position     `json:"target"`
	Damage      int          `json:"damage"`
	EnemyHealth int          `json:"enemyHealth"`
}

type TorpedoMissEvent struct {
	Team   catalog.Team `json:"team"`
	Target Position     `json:"target"`
}

type GameOverEvent struct {
	Winner catalog.Team `json:"winner"`
}

type AutomatedRolesUpdatedEvent struct {
	Team           catalog.Team   `json:"team"`
	AutomatedRoles []catalog.Role `json:"automatedRoles"`
}

// AutomationActionEvent is the team-private trace of what an automated role
// just did on the crew's behalf.
type AutomationActionEvent struct {
	Role    catalog.Role           `json:"role"`
	Action  string                 `json:"action"`
	Details map[string]interface{} `json:"details"`
}
