package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// ChargeSystem raises the system's charge by one, clamped at the catalog
// maximum. Charging a full system changes nothing but still refreshes the
// team's view.
func (e *Engine) ChargeSystem(code string, team catalog.Team, system catalog.System) error {
	st, exists := e.store.Get(code)
	if !exists {
		return ErrUnknownGame
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.Winner != "" {
		return ErrGameOver
	}
	if !system.Valid() {
		return ErrUnknownSystem
	}

	sub := st.Submarines[team]
	if sub.Systems[system] < system.Max() {
		sub.Systems[system]++
	}
	st.touch()

	e.publisher.ToTeam(code, team, network.MsgTypeSystemCharged, SystemChargedEvent{
		Team:   team,
		System: system,
		Value:  sub.Systems[system],
	})
	e.publisher.ToTeam(code, team, network.MsgTypeGameState, projectLocked(st, team))
	return nil
}

// MarkDamage occupies a damage slot on the engineering board. When the mark
// completes a circuit, all four of that circuit's slots self-repair. Returns
// the completed circuit ids (at most one: a slot sits on one circuit).
func (e *Engine) MarkDamage(code string, team catalog.Team, slotID string, direction catalog.Direction) ([]string, error) {
	st, exists := e.store.Get(code)
	if !exists {
		return nil, ErrUnknownGame
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.Winner != "" {
		return nil, ErrGameOver
	}

	slot, ok := catalog.SlotByID(slotID)
	if !ok || slot.Dir != direction {
		return nil, ErrSlotDirection
	}

	sub := st.Submarines[team]
	if sub.hasDamage(slotID) {
		return nil, ErrSlotAlreadyDamaged
	}

	sub.DamagedSlots = append(sub.DamagedSlots, slotID)
	completed := clearCompletedCircuits(sub)
	st.touch()

	e.publisher.ToTeam(code, team, network.MsgTypeDamageMarked, DamageMarkedEvent{
		Team:              team,
		SlotID:            slotID,
		Direction:         direction,
		CompletedCircuits: completed,
		DamagedSlots:      append([]string{}, sub.DamagedSlots...),
	})
	return completed, nil
}

// clearCompletedCircuits removes every fully damaged circuit's slots from
// the board and reports which circuits completed. Caller holds the state
// lock.
func clearCompletedCircuits(sub *Submarine) []string {
	completed := []string{}
	for _, circuit := range catalog.Circuits() {
		full := true
		for _, id := range catalog.CircuitSlots(circuit) {
			if !sub.hasDamage(id) {
				full = false
				break
			}
		}
		if full {
			completed = append(completed, circuit)
		}
	}

	if len(completed) > 0 {
		cleared := make(map[string]bool)
		for _, circuit := range completed {
			for _, id := range catalog.CircuitSlots(circuit) {
				cleared[id] = true
			}
		}
		kept := sub.DamagedSlots[:0]
		for _, id := range sub.DamagedSlots {
			if !cleared[id] {
				kept = append(kept, id)
			}
		}
		sub.DamagedSlots = kept
	}
	return completed
}

// SystemBlocked reports whether any damaged slot carries the system, which
// the client uses to grey out the first mate's panel.
func SystemBlocked(sub *Submarine, system catalog.System) bool {
	for _, id := range sub.DamagedSlots {
		if slot, ok := catalog.SlotByID(id); ok && slot.System == system {
			return true
		}
	}
	return false
}

// DirectionExhausted reports whether every slot of a direction is damaged.
// The board UI hints at hull damage here, but no rule inflicts it.
func DirectionExhausted(sub *Submarine, direction catalog.Direction) bool {
	for _, slot := range catalog.SlotsForDirection(direction) {
		if !sub.hasDamage(slot.ID) {
			return false
		}
	}
	return true
}
