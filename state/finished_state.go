package state

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/logger"
)

// FinishedState is terminal. Every further intent is ignored; the session
// only exists so late viewers can still fetch the final board.
type FinishedState struct {
	RoomStateBase
	Winner catalog.Team
}

func NewFinishedState(room RoomContext, winner catalog.Team) *FinishedState {
	return &FinishedState{
		RoomStateBase: RoomStateBase{
			ID:   "finished",
			Room: room,
		},
		Winner: winner,
	}
}

func (s *FinishedState) OnEnter() {
	logger.Log.Infof("Game %s finished, winner: %s", s.Room.GetCode(), s.Winner)
}

func (s *FinishedState) HandleAction(player Player, msgID uint16, data []byte) error {
	return ErrActionNotAllowed
}
