package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// actorAuto marks confirmations produced by automation rather than a human.
const actorAuto = "auto"

// RunAutomation performs the delegated roles' actions for the team's latest
// move and confirms each of them, closing the turn unaided when every
// mandatory role is automated. Invoked from the delayed one-shot scheduled
// by SubmitMove; safe to call immediately, and a no-op if the session went
// away or already concluded.
func (e *Engine) RunAutomation(code string, team catalog.Team, direction catalog.Direction) {
	e.clearPendingAutomation(code, team)

	st, exists := e.store.Get(code)
	if !exists {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.Winner != "" {
		return
	}
	sub := st.Submarines[team]
	if !sub.AwaitingConfirmation {
		return
	}

	if sub.isAutomated(catalog.RoleFirstMate) {
		e.autoFirstMate(st, team, sub)
	}
	if sub.isAutomated(catalog.RoleEngineer) {
		e.autoEngineer(st, team, sub, direction)
	}
	if sub.isAutomated(catalog.RoleRadioOperator) {
		e.autoRadioOperator(st, team, sub)
	}

	e.closeTurnIfQuorum(st, team)
	e.publisher.ToTeam(code, team, network.MsgTypeGameState, projectLocked(st, team))
}

// autoFirstMate charges the first system in the team's priority order that
// is below its maximum, then confirms.
func (e *Engine) autoFirstMate(st *GameState, team catalog.Team, sub *Submarine) {
	priority := sub.SystemPriority
	if len(priority) == 0 {
		priority = catalog.DefaultPriority()
	}

	for _, system := range priority {
		if sub.Systems[system] >= system.Max() {
			continue
		}
		sub.Systems[system]++
		e.publisher.ToTeam(st.Code, team, network.MsgTypeSystemCharged, SystemChargedEvent{
			Team:   team,
			System: system,
			Value:  sub.Systems[system],
		})
		e.publisher.ToTeam(st.Code, team, network.MsgTypeAutomationAction, AutomationActionEvent{
			Role:    catalog.RoleFirstMate,
			Action:  "charged",
			Details: map[string]interface{}{"system": system},
		})
		break
	}

	e.autoConfirm(st, team, sub, catalog.RoleFirstMate)
}

// autoEngineer marks the first undamaged slot of the moved direction, in
// board order, clearing any circuit that completes, then confirms.
func (e *Engine) autoEngineer(st *GameState, team catalog.Team, sub *Submarine, direction catalog.Direction) {
	for _, slot := range catalog.SlotsForDirection(direction) {
		if sub.hasDamage(slot.ID) {
			continue
		}
		sub.DamagedSlots = append(sub.DamagedSlots, slot.ID)
		completed := clearCompletedCircuits(sub)

		e.publisher.ToTeam(st.Code, team, network.MsgTypeDamageMarked, DamageMarkedEvent{
			Team:              team,
			SlotID:            slot.ID,
			Direction:         direction,
			CompletedCircuits: completed,
			DamagedSlots:      append([]string{}, sub.DamagedSlots...),
		})
		e.publisher.ToTeam(st.Code, team, network.MsgTypeAutomationAction, AutomationActionEvent{
			Role:   catalog.RoleEngineer,
			Action: "marked-damage",
			Details: map[string]interface{}{
				"slotId":            slot.ID,
				"direction":         direction,
				"completedCircuits": completed,
			},
		})
		break
	}

	e.autoConfirm(st, team, sub, catalog.RoleEngineer)
}

// autoRadioOperator has no world effect; it confirms and leaves a trace.
func (e *Engine) autoRadioOperator(st *GameState, team catalog.Team, sub *Submarine) {
	if sub.hasConfirmed(catalog.RoleRadioOperator) {
		return
	}
	e.autoConfirm(st, team, sub, catalog.RoleRadioOperator)
	e.publisher.ToTeam(st.Code, team, network.MsgTypeAutomationAction, AutomationActionEvent{
		Role:    catalog.RoleRadioOperator,
		Action:  "confirmed",
		Details: map[string]interface{}{},
	})
}

func (e *Engine) autoConfirm(st *GameState, team catalog.Team, sub *Submarine, role catalog.Role) {
	if sub.hasConfirmed(role) {
		return
	}
	sub.ConfirmedRoles = append(sub.ConfirmedRoles, role)
	e.publisher.ToRoom(st.Code, network.MsgTypeRoleConfirmed, RoleConfirmedEvent{
		Team:  team,
		Role:  role,
		Actor: actorAuto,
	})
}
