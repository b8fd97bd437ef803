package game

import (
	"testing"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

func TestRunAutomation_FullyAutomatedCrewClosesTurnUnaided(t *testing.T) {
	engine, publisher, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT01", catalog.TeamAlpha, []catalog.Role{
		catalog.RoleFirstMate, catalog.RoleEngineer, catalog.RoleRadioOperator,
	})
	if err := engine.SubmitMove("AUT01", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	publisher.reset()

	scheduler.fire()

	st, _ := engine.Store().Get("AUT01")
	sub := st.Submarines[catalog.TeamAlpha]
	if sub.AwaitingConfirmation {
		t.Fatal("A fully automated crew should close the turn without human input")
	}
	if publisher.count("room", network.MsgTypeTurnComplete) != 1 {
		t.Error("Expected a turn-complete event")
	}
	if publisher.count("room", network.MsgTypeRoleConfirmed) != 3 {
		t.Errorf("Expected three automated confirmations, got %d",
			publisher.count("room", network.MsgTypeRoleConfirmed))
	}

	// Automation charged one system and marked one east slot.
	if got := sub.Systems[catalog.SystemTorpedo]; got != 1 {
		t.Errorf("First mate should charge torpedo first by default, got %d", got)
	}
	if len(sub.DamagedSlots) != 1 || sub.DamagedSlots[0] != "e1" {
		t.Errorf("Engineer should mark the first east slot, got %v", sub.DamagedSlots)
	}
}

func TestRunAutomation_ConfirmationsCarryAutoActor(t *testing.T) {
	engine, publisher, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT02", catalog.TeamAlpha, []catalog.Role{catalog.RoleRadioOperator})
	if err := engine.SubmitMove("AUT02", catalog.TeamAlpha, catalog.North); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	scheduler.fire()

	event, ok := publisher.last(network.MsgTypeRoleConfirmed)
	if !ok {
		t.Fatal("Expected a role-confirmed event")
	}
	confirmed, ok := event.Payload.(RoleConfirmedEvent)
	if !ok {
		t.Fatalf("Unexpected payload type %T", event.Payload)
	}
	if confirmed.Actor != actorAuto {
		t.Errorf("Automated confirmations should carry the %q actor, got %q", actorAuto, confirmed.Actor)
	}
	if confirmed.Role != catalog.RoleRadioOperator {
		t.Errorf("Expected radio-operator confirmation, got %s", confirmed.Role)
	}
}

func TestAutoFirstMate_FollowsConfiguredPriority(t *testing.T) {
	engine, _, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT03", catalog.TeamAlpha, []catalog.Role{catalog.RoleFirstMate})
	engine.SetSystemPriority("AUT03", catalog.TeamAlpha, []catalog.System{
		catalog.SystemSilence, catalog.SystemTorpedo,
	})

	if err := engine.SubmitMove("AUT03", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	scheduler.fire()

	st, _ := engine.Store().Get("AUT03")
	sub := st.Submarines[catalog.TeamAlpha]
	if got := sub.Systems[catalog.SystemSilence]; got != 1 {
		t.Errorf("Expected silence charged per configured priority, got %d", got)
	}
	if got := sub.Systems[catalog.SystemTorpedo]; got != 0 {
		t.Errorf("Torpedo should wait behind silence, got %d", got)
	}
}

func TestAutoFirstMate_SkipsFullSystems(t *testing.T) {
	engine, _, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT04", catalog.TeamAlpha, []catalog.Role{catalog.RoleFirstMate})
	st := engine.Store().GetOrCreate("AUT04")
	st.Submarines[catalog.TeamAlpha].Systems[catalog.SystemTorpedo] = catalog.SystemTorpedo.Max()

	if err := engine.SubmitMove("AUT04", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	scheduler.fire()

	sub := st.Submarines[catalog.TeamAlpha]
	if got := sub.Systems[catalog.SystemTorpedo]; got != catalog.SystemTorpedo.Max() {
		t.Errorf("Full torpedo must stay clamped, got %d", got)
	}
	if got := sub.Systems[catalog.SystemMine]; got != 1 {
		t.Errorf("Expected the next priority system charged, got mine=%d", got)
	}
}

func TestAutoEngineer_MarksNextFreeSlotOfHeading(t *testing.T) {
	engine, _, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT05", catalog.TeamAlpha, []catalog.Role{catalog.RoleEngineer})
	st := engine.Store().GetOrCreate("AUT05")
	st.Submarines[catalog.TeamAlpha].DamagedSlots = []string{"n1"}

	if err := engine.SubmitMove("AUT05", catalog.TeamAlpha, catalog.North); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	scheduler.fire()

	sub := st.Submarines[catalog.TeamAlpha]
	if !sub.hasDamage("n2") {
		t.Errorf("Engineer should skip the damaged n1 and mark n2, got %v", sub.DamagedSlots)
	}
}

func TestRunAutomation_NoOpWhenTurnAlreadyClosed(t *testing.T) {
	engine, publisher, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT06", catalog.TeamAlpha, []catalog.Role{catalog.RoleRadioOperator})
	if err := engine.SubmitMove("AUT06", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}

	// Humans confirm everything before the delayed trigger fires.
	for _, role := range []catalog.Role{catalog.RoleFirstMate, catalog.RoleEngineer, catalog.RoleRadioOperator} {
		if err := engine.ConfirmRole("AUT06", catalog.TeamAlpha, role, "7"); err != nil {
			t.Fatalf("ConfirmRole(%s) failed: %v", role, err)
		}
	}
	publisher.reset()

	scheduler.fire()

	if publisher.count("room", network.MsgTypeTurnComplete) != 0 {
		t.Error("A late trigger on a closed turn must not complete it again")
	}
	if publisher.count("room", network.MsgTypeRoleConfirmed) != 0 {
		t.Error("A late trigger must not re-confirm roles")
	}
}

func TestRunAutomation_NoOpForRemovedSession(t *testing.T) {
	engine, publisher, scheduler := newTestEngine()

	engine.SetAutomatedRoles("AUT07", catalog.TeamAlpha, []catalog.Role{catalog.RoleFirstMate})
	if err := engine.SubmitMove("AUT07", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	engine.Store().Remove("AUT07")
	publisher.reset()

	scheduler.fire()

	if len(publisher.Events) != 0 {
		t.Errorf("Automation on a removed session must emit nothing, got %d events", len(publisher.Events))
	}
}
