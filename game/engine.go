package game

import (
	"errors"
	"sync"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// Invalid actions are rejected with these and cause no state mutation and no
// outbound event. The gateway logs and swallows them; this is a cooperative
// game, not a security boundary.
var (
	ErrUnknownGame          = errors.New("no live session for game code")
	ErrGameOver             = errors.New("game already concluded")
	ErrAwaitingConfirmation = errors.New("move already awaiting confirmation")
	ErrNoPendingMove        = errors.New("no move awaiting confirmation")
	ErrTorpedoNotCharged    = errors.New("torpedo not fully charged")
	ErrSlotDirection        = errors.New("slot does not belong to direction")
	ErrSlotAlreadyDamaged   = errors.New("slot already damaged")
	ErrUnknownSystem        = errors.New("unknown system")
)

// Publisher is the audience-scoped fan-out capability handed to the engine.
// The engine never touches a transport directly; it describes who should
// hear what and the broadcast layer does the delivery.
type Publisher interface {
	ToRoom(code string, msgID uint16, payload interface{})
	ToTeam(code string, team catalog.Team, msgID uint16, payload interface{})
}

// Scheduler runs the delayed automation trigger. AddTimer returns a handle
// that RemoveTimer cancels, so tests can drive automation synchronously and
// a concluded game can drop its pending trigger.
type Scheduler interface {
	AddTimer(delay time.Duration, interval time.Duration, callback func()) int64
	RemoveTimer(timerID int64)
}

// Metrics is the slice of the monitor the engine reports to. Optional; a
// nil engine metrics sink is fine.
type Metrics interface {
	IncTurnsCompleted()
	IncTorpedoesFired()
}

// Engine processes every gameplay intent against the session store. Each
// call locks the one session it touches; the two teams' turn machines are
// otherwise fully independent.
type Engine struct {
	store           *Store
	publisher       Publisher
	scheduler       Scheduler
	automationDelay time.Duration
	onGameOver      func(code string, winner catalog.Team)
	metrics         Metrics

	// pending automation timer per code+team, so a concluded or reset game
	// can drop its not-yet-fired trigger
	pending   map[string]int64
	pendingMu sync.Mutex
}

func NewEngine(store *Store, publisher Publisher, scheduler Scheduler, automationDelay time.Duration) *Engine {
	return &Engine{
		store:           store,
		publisher:       publisher,
		scheduler:       scheduler,
		automationDelay: automationDelay,
		pending:         make(map[string]int64),
	}
}

// SetGameOverHook registers a callback invoked once when a session
// concludes. Used for fire-and-forget result recording; failures there must
// never reach gameplay state.
func (e *Engine) SetGameOverHook(fn func(code string, winner catalog.Team)) {
	e.onGameOver = fn
}

// SetMetrics attaches a stats sink for turn and combat counters.
func (e *Engine) SetMetrics(m Metrics) {
	e.metrics = m
}

// Store exposes the session store for read-side collaborators (RPC, expiry).
func (e *Engine) Store() *Store {
	return e.store
}

// StartGame resets the session for code to a fresh state, preserving any
// automation settings the teams configured in the lobby, and pushes each
// team its own starting view.
func (e *Engine) StartGame(code string) {
	fresh := NewGameState(code)

	if old, exists := e.store.Get(code); exists {
		old.mu.Lock()
		for team, sub := range old.Submarines {
			fresh.Submarines[team].AutomatedRoles = append([]catalog.Role{}, sub.AutomatedRoles...)
			fresh.Submarines[team].SystemPriority = append([]catalog.System{}, sub.SystemPriority...)
		}
		old.mu.Unlock()
		e.cancelPendingAutomation(code, catalog.TeamAlpha)
		e.cancelPendingAutomation(code, catalog.TeamBravo)
	}

	e.store.Put(fresh)

	fresh.mu.Lock()
	defer fresh.mu.Unlock()
	for _, team := range []catalog.Team{catalog.TeamAlpha, catalog.TeamBravo} {
		e.publisher.ToTeam(code, team, network.MsgTypeGameStarted, projectLocked(fresh, team))
	}
}

// SetAutomatedRoles replaces the set of roles a team has delegated to
// automation. Creates the session if the lobby configures automation before
// the first move.
func (e *Engine) SetAutomatedRoles(code string, team catalog.Team, roles []catalog.Role) {
	st := e.store.GetOrCreate(code)

	st.mu.Lock()
	sub := st.Submarines[team]
	sub.AutomatedRoles = append([]catalog.Role{}, roles...)
	st.touch()
	e.publisher.ToTeam(code, team, network.MsgTypeAutomatedRolesUpdated, AutomatedRolesUpdatedEvent{
		Team:           team,
		AutomatedRoles: sub.AutomatedRoles,
	})
	st.mu.Unlock()
}

// SetSystemPriority replaces the charge ordering used by first-mate
// automation for the team.
func (e *Engine) SetSystemPriority(code string, team catalog.Team, priority []catalog.System) {
	st := e.store.GetOrCreate(code)

	st.mu.Lock()
	st.Submarines[team].SystemPriority = append([]catalog.System{}, priority...)
	st.touch()
	st.mu.Unlock()
}

func pendingKey(code string, team catalog.Team) string {
	return code + "/" + string(team)
}

func (e *Engine) setPendingAutomation(code string, team catalog.Team, timerID int64) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	e.pending[pendingKey(code, team)] = timerID
}

func (e *Engine) clearPendingAutomation(code string, team catalog.Team) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	delete(e.pending, pendingKey(code, team))
}

// cancelPendingAutomation drops the team's not-yet-fired trigger, if any.
// Removing an already-fired timer id is a harmless no-op.
func (e *Engine) cancelPendingAutomation(code string, team catalog.Team) {
	e.pendingMu.Lock()
	timerID, exists := e.pending[pendingKey(code, team)]
	delete(e.pending, pendingKey(code, team))
	e.pendingMu.Unlock()

	if exists && e.scheduler != nil {
		e.scheduler.RemoveTimer(timerID)
	}
}
