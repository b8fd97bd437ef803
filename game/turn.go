package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// SubmitMove advances the team's submarine one step in the given heading and
// opens the confirmation quorum. Rejected while a previous move of the same
// team is still awaiting confirmation. Creates the session on first move.
func (e *Engine) SubmitMove(code string, team catalog.Team, direction catalog.Direction) error {
	st := e.store.GetOrCreate(code)

	st.mu.Lock()

	if st.Winner != "" {
		st.mu.Unlock()
		return ErrGameOver
	}
	sub := st.Submarines[team]
	if sub.AwaitingConfirmation {
		st.mu.Unlock()
		return ErrAwaitingConfirmation
	}

	dx, dy := direction.Delta()
	sub.Path = append(sub.Path, sub.Position)
	sub.Position = Position{X: sub.Position.X + dx, Y: sub.Position.Y + dy}
	sub.AwaitingConfirmation = true
	sub.ConfirmedRoles = sub.ConfirmedRoles[:0]
	st.touch()

	e.publisher.ToTeam(code, team, network.MsgTypeGameState, projectLocked(st, team))
	e.publisher.ToRoom(code, network.MsgTypeMoveAnnounced, MoveAnnouncedEvent{
		Team:                 team,
		Direction:            direction,
		AwaitingConfirmation: true,
	})
	// The enemy hears the engines but does not see the boat.
	e.publisher.ToTeam(code, team.Opponent(), network.MsgTypePlayMoveSound, PlayMoveSoundEvent{
		Team:      team,
		Direction: direction,
	})

	automated := len(sub.AutomatedRoles) > 0
	st.mu.Unlock()

	// Automation runs on a short delay so human UIs render the move first.
	// The delay is pacing only; RunAutomation is correct if invoked at
	// once, which is why scheduling happens outside the session lock.
	if automated {
		timerID := e.scheduler.AddTimer(e.automationDelay, 0, func() {
			e.RunAutomation(code, team, direction)
		})
		e.setPendingAutomation(code, team, timerID)
	}
	return nil
}

// ConfirmRole records a crew acknowledgment for the pending move and closes
// the turn once every mandatory role has confirmed or is automated. Adding
// an already-present role is a harmless no-op.
func (e *Engine) ConfirmRole(code string, team catalog.Team, role catalog.Role, actor string) error {
	st, exists := e.store.Get(code)
	if !exists {
		return ErrUnknownGame
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.Winner != "" {
		return ErrGameOver
	}
	sub := st.Submarines[team]
	if !sub.AwaitingConfirmation {
		return ErrNoPendingMove
	}

	if !sub.hasConfirmed(role) {
		sub.ConfirmedRoles = append(sub.ConfirmedRoles, role)
	}
	st.touch()

	e.publisher.ToRoom(code, network.MsgTypeRoleConfirmed, RoleConfirmedEvent{
		Team:  team,
		Role:  role,
		Actor: actor,
	})

	e.closeTurnIfQuorum(st, team)
	return nil
}

// closeTurnIfQuorum checks the mandatory non-captain roles against the
// confirmed and automated sets, and on quorum resets the turn and announces
// completion. Caller holds st.mu.
func (e *Engine) closeTurnIfQuorum(st *GameState, team catalog.Team) bool {
	sub := st.Submarines[team]
	if !sub.AwaitingConfirmation {
		return false
	}
	for _, role := range catalog.RequiredRoles() {
		if !sub.hasConfirmed(role) && !sub.isAutomated(role) {
			return false
		}
	}

	sub.AwaitingConfirmation = false
	sub.ConfirmedRoles = sub.ConfirmedRoles[:0]
	e.publisher.ToRoom(st.Code, network.MsgTypeTurnComplete, TurnCompleteEvent{Team: team})
	if e.metrics != nil {
		e.metrics.IncTurnsCompleted()
	}
	return true
}
