package game

import (
	"testing"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

func TestSubmitMove_AdvancesPositionAndOpensConfirmation(t *testing.T) {
	engine, publisher, _ := newTestEngine()

	if err := engine.SubmitMove("MOVE01", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}

	st, _ := engine.Store().Get("MOVE01")
	sub := st.Submarines[catalog.TeamAlpha]

	if sub.Position.X != 2 || sub.Position.Y != 1 {
		t.Errorf("Expected position (2,1) after moving east from (1,1), got %+v", sub.Position)
	}
	if len(sub.Path) != 1 || sub.Path[0].X != 1 || sub.Path[0].Y != 1 {
		t.Errorf("Expected path to record the vacated position, got %v", sub.Path)
	}
	if !sub.AwaitingConfirmation {
		t.Error("Move should open the confirmation window")
	}
	if len(sub.ConfirmedRoles) != 0 {
		t.Errorf("Confirmed roles should be cleared by a new move, got %v", sub.ConfirmedRoles)
	}

	if publisher.count(string(catalog.TeamAlpha), network.MsgTypeGameState) != 1 {
		t.Error("Expected a state refresh for the moving team")
	}
	if publisher.count("room", network.MsgTypeMoveAnnounced) != 1 {
		t.Error("Expected a room-wide move announcement")
	}
	if publisher.count(string(catalog.TeamBravo), network.MsgTypePlayMoveSound) != 1 {
		t.Error("Expected the enemy team to hear the move sound")
	}
	if publisher.count(string(catalog.TeamBravo), network.MsgTypeGameState) != 0 {
		t.Error("The enemy team must not receive the mover's state refresh")
	}
}

func TestSubmitMove_NorthDecreasesY(t *testing.T) {
	engine, _, _ := newTestEngine()

	st := engine.Store().GetOrCreate("MOVE02")
	st.Submarines[catalog.TeamBravo].Position = Position{X: 5, Y: 5}

	if err := engine.SubmitMove("MOVE02", catalog.TeamBravo, catalog.North); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	got := st.Submarines[catalog.TeamBravo].Position
	if got.X != 5 || got.Y != 4 {
		t.Errorf("Expected (5,4) after moving north from (5,5), got %+v", got)
	}
}

func TestSubmitMove_RejectedWhileAwaitingConfirmation(t *testing.T) {
	engine, _, _ := newTestEngine()

	if err := engine.SubmitMove("MOVE03", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("first SubmitMove failed: %v", err)
	}
	err := engine.SubmitMove("MOVE03", catalog.TeamAlpha, catalog.South)
	if err != ErrAwaitingConfirmation {
		t.Fatalf("Expected ErrAwaitingConfirmation, got %v", err)
	}

	st, _ := engine.Store().Get("MOVE03")
	sub := st.Submarines[catalog.TeamAlpha]
	if sub.Position.X != 2 || sub.Position.Y != 1 {
		t.Errorf("Rejected move must not change the position, got %+v", sub.Position)
	}
	if len(sub.Path) != 1 {
		t.Errorf("Rejected move must not grow the path, got %d entries", len(sub.Path))
	}
}

func TestSubmitMove_TeamsMoveIndependently(t *testing.T) {
	engine, _, _ := newTestEngine()

	if err := engine.SubmitMove("MOVE04", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("alpha move failed: %v", err)
	}
	// Alpha awaiting confirmation must not block bravo.
	if err := engine.SubmitMove("MOVE04", catalog.TeamBravo, catalog.West); err != nil {
		t.Fatalf("bravo move should be independent of alpha's pending turn: %v", err)
	}
}

func TestSubmitMove_SchedulesAutomationOnlyWhenDelegated(t *testing.T) {
	engine, _, scheduler := newTestEngine()

	if err := engine.SubmitMove("MOVE05", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	if len(scheduler.Pending) != 0 {
		t.Errorf("No roles automated, no trigger should be scheduled; got %d", len(scheduler.Pending))
	}

	engine.SetAutomatedRoles("MOVE05", catalog.TeamBravo, []catalog.Role{catalog.RoleRadioOperator})
	if err := engine.SubmitMove("MOVE05", catalog.TeamBravo, catalog.West); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	if len(scheduler.Pending) != 1 {
		t.Errorf("Expected one scheduled automation trigger, got %d", len(scheduler.Pending))
	}
}

func TestConfirmRole_ClosesTurnOnQuorum(t *testing.T) {
	engine, publisher, _ := newTestEngine()

	if err := engine.SubmitMove("TURN01", catalog.TeamAlpha, catalog.South); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	publisher.reset()

	for _, role := range []catalog.Role{catalog.RoleFirstMate, catalog.RoleEngineer} {
		if err := engine.ConfirmRole("TURN01", catalog.TeamAlpha, role, "7"); err != nil {
			t.Fatalf("ConfirmRole(%s) failed: %v", role, err)
		}
	}

	st, _ := engine.Store().Get("TURN01")
	if !st.Submarines[catalog.TeamAlpha].AwaitingConfirmation {
		t.Fatal("Turn must stay open until every mandatory role confirmed")
	}
	if publisher.count("room", network.MsgTypeTurnComplete) != 0 {
		t.Fatal("No turn-complete before quorum")
	}

	if err := engine.ConfirmRole("TURN01", catalog.TeamAlpha, catalog.RoleRadioOperator, "8"); err != nil {
		t.Fatalf("final ConfirmRole failed: %v", err)
	}

	sub := st.Submarines[catalog.TeamAlpha]
	if sub.AwaitingConfirmation {
		t.Error("Turn should close once first mate, engineer and radio operator confirmed")
	}
	if len(sub.ConfirmedRoles) != 0 {
		t.Errorf("Confirmed roles should reset when the turn closes, got %v", sub.ConfirmedRoles)
	}
	if publisher.count("room", network.MsgTypeTurnComplete) != 1 {
		t.Error("Expected one room-wide turn-complete event")
	}
	if publisher.count("room", network.MsgTypeRoleConfirmed) != 3 {
		t.Errorf("Expected three role-confirmed events, got %d",
			publisher.count("room", network.MsgTypeRoleConfirmed))
	}
}

func TestConfirmRole_DuplicateIsNoOp(t *testing.T) {
	engine, _, _ := newTestEngine()

	if err := engine.SubmitMove("TURN02", catalog.TeamAlpha, catalog.South); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := engine.ConfirmRole("TURN02", catalog.TeamAlpha, catalog.RoleFirstMate, "7"); err != nil {
			t.Fatalf("repeat ConfirmRole failed: %v", err)
		}
	}

	st, _ := engine.Store().Get("TURN02")
	sub := st.Submarines[catalog.TeamAlpha]
	if len(sub.ConfirmedRoles) != 1 {
		t.Errorf("Repeated confirmation should record the role once, got %v", sub.ConfirmedRoles)
	}
	if !sub.AwaitingConfirmation {
		t.Error("One role three times is not quorum")
	}
}

func TestConfirmRole_RejectedWithoutPendingMove(t *testing.T) {
	engine, _, _ := newTestEngine()

	if err := engine.ConfirmRole("TURN03", catalog.TeamAlpha, catalog.RoleFirstMate, "7"); err != ErrUnknownGame {
		t.Fatalf("Expected ErrUnknownGame for a session that never existed, got %v", err)
	}

	engine.Store().GetOrCreate("TURN03")
	if err := engine.ConfirmRole("TURN03", catalog.TeamAlpha, catalog.RoleFirstMate, "7"); err != ErrNoPendingMove {
		t.Fatalf("Expected ErrNoPendingMove while idle, got %v", err)
	}
}

func TestConfirmRole_AutomatedRolesCountTowardQuorum(t *testing.T) {
	engine, publisher, _ := newTestEngine()

	engine.SetAutomatedRoles("TURN04", catalog.TeamAlpha, []catalog.Role{
		catalog.RoleEngineer, catalog.RoleRadioOperator,
	})
	if err := engine.SubmitMove("TURN04", catalog.TeamAlpha, catalog.East); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	publisher.reset()

	// Only the first mate is human; their single confirmation is quorum.
	if err := engine.ConfirmRole("TURN04", catalog.TeamAlpha, catalog.RoleFirstMate, "7"); err != nil {
		t.Fatalf("ConfirmRole failed: %v", err)
	}

	st, _ := engine.Store().Get("TURN04")
	if st.Submarines[catalog.TeamAlpha].AwaitingConfirmation {
		t.Error("Automated roles should count as confirmed for quorum")
	}
	if publisher.count("room", network.MsgTypeTurnComplete) != 1 {
		t.Error("Expected a turn-complete event")
	}
}
