// state/interfaces.go
package state

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Player is the slice of a connected session a lifecycle state needs.
type Player interface {
	GetID() string
	GetUserID() int64
	Team() catalog.Team
	HasRole(role catalog.Role) bool
}

// RoomContext is what a room must expose to be driven by the lifecycle
// state machine. Defined here to break the import cycle between room and
// state.
type RoomContext interface {
	GetCode() string
	GetPlayers() map[string]Player
	ChangeState(newState State) error
	Broadcast(msgID uint16, payload interface{}) error
}
