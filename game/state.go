// Package game implements the in-memory turn coordination core: the session
// store, the per-team turn state machine, the combat resolver, the crew
// automation engine and the fog-of-war projection.
package game

import (
	"sync"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Position is a grid coordinate. The y axis grows southward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Submarine is the full per-team state. JSON tags match the wire format the
// client renders.
type Submarine struct {
	Position             Position               `json:"position"`
	Path                 []Position             `json:"path"`
	Health               int                    `json:"health"`
	Systems              map[catalog.System]int `json:"systems"`
	AwaitingConfirmation bool                   `json:"awaitingConfirmation"`
	ConfirmedRoles       []catalog.Role         `json:"confirmedRoles"`
	AutomatedRoles       []catalog.Role         `json:"automatedRoles"`
	DamagedSlots         []string               `json:"damagedSlots"`
	SystemPriority       []catalog.System       `json:"systemPriority"`
}

func (s *Submarine) hasConfirmed(role catalog.Role) bool {
	for _, r := range s.ConfirmedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Submarine) isAutomated(role catalog.Role) bool {
	for _, r := range s.AutomatedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Submarine) hasDamage(slotID string) bool {
	for _, id := range s.DamagedSlots {
		if id == slotID {
			return true
		}
	}
	return false
}

// GameState is one live game session. All mutation goes through the Engine,
// which holds mu for the duration of each event.
type GameState struct {
	Code        string
	Submarines  map[catalog.Team]*Submarine
	CurrentTurn catalog.Team
	Winner      catalog.Team

	mu         sync.Mutex
	lastActive time.Time
}

func newSubmarine(start Position) *Submarine {
	systems := make(map[catalog.System]int, len(catalog.Systems()))
	for _, s := range catalog.Systems() {
		systems[s] = 0
	}
	return &Submarine{
		Position:       start,
		Path:           []Position{},
		Health:         4,
		Systems:        systems,
		ConfirmedRoles: []catalog.Role{},
		AutomatedRoles: []catalog.Role{},
		DamagedSlots:   []string{},
		SystemPriority: catalog.DefaultPriority(),
	}
}

// NewGameState builds a fresh session with both submarines at their starting
// positions.
func NewGameState(code string) *GameState {
	return &GameState{
		Code: code,
		Submarines: map[catalog.Team]*Submarine{
			catalog.TeamAlpha: newSubmarine(Position{X: 1, Y: 1}),
			catalog.TeamBravo: newSubmarine(Position{X: 14, Y: 9}),
		},
		CurrentTurn: catalog.TeamAlpha,
		lastActive:  time.Now(),
	}
}

func (g *GameState) touch() {
	g.lastActive = time.Now()
}

func (g *GameState) idleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// GameSummary is a lock-free copy of the headline session facts, used by the
// admin RPC surface.
type GameSummary struct {
	Code        string
	CurrentTurn catalog.Team
	Winner      catalog.Team
	Health      map[catalog.Team]int
}

// Summary snapshots the session under its lock.
func (g *GameState) Summary() GameSummary {
	g.mu.Lock()
	defer g.mu.Unlock()

	health := make(map[catalog.Team]int, len(g.Submarines))
	for team, sub := range g.Submarines {
		health[team] = sub.Health
	}
	return GameSummary{
		Code:        g.Code,
		CurrentTurn: g.CurrentTurn,
		Winner:      g.Winner,
		Health:      health,
	}
}
