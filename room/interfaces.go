package room

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Broadcaster is the fan-out surface a room needs. Defined here to break
// the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
	BroadcastToTeam(code string, team catalog.Team, msgID uint16, data []byte) error
}
