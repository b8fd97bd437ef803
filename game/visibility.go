package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
)

// SubmarineView is the wire shape of one submarine inside a team-scoped
// projection. For the enemy boat everything except health is zeroed.
type SubmarineView struct {
	Position             *Position              `json:"position"`
	Path                 []Position             `json:"path"`
	Health               int                    `json:"health"`
	Systems              map[catalog.System]int `json:"systems"`
	AwaitingConfirmation bool                   `json:"awaitingConfirmation"`
	ConfirmedRoles       []catalog.Role         `json:"confirmedRoles"`
	DamagedSlots         []string               `json:"damagedSlots"`
}

// TeamView is everything one team is entitled to observe, plus that team's
// own automation settings for the lobby and crew panels.
type TeamView struct {
	Submarines     map[catalog.Team]*SubmarineView `json:"submarines"`
	CurrentTurn    catalog.Team                    `json:"currentTurn"`
	Winner         catalog.Team                    `json:"winner,omitempty"`
	AutomatedRoles []catalog.Role                  `json:"automatedRoles"`
	SystemPriority []catalog.System                `json:"systemPriority"`
}

// ProjectForTeam returns a fresh fog-of-war projection of the session for
// the requesting team: own submarine in full, enemy submarine reduced to
// health. Never cache the result; project again after every mutation.
func ProjectForTeam(st *GameState, team catalog.Team) *TeamView {
	st.mu.Lock()
	defer st.mu.Unlock()
	return projectLocked(st, team)
}

func projectLocked(st *GameState, team catalog.Team) *TeamView {
	own := st.Submarines[team]
	enemy := st.Submarines[team.Opponent()]

	ownPos := own.Position
	systems := make(map[catalog.System]int, len(own.Systems))
	for s, v := range own.Systems {
		systems[s] = v
	}

	return &TeamView{
		Submarines: map[catalog.Team]*SubmarineView{
			team: {
				Position:             &ownPos,
				Path:                 append([]Position{}, own.Path...),
				Health:               own.Health,
				Systems:              systems,
				AwaitingConfirmation: own.AwaitingConfirmation,
				ConfirmedRoles:       append([]catalog.Role{}, own.ConfirmedRoles...),
				DamagedSlots:         append([]string{}, own.DamagedSlots...),
			},
			team.Opponent(): {
				// They announce damage; everything else stays hidden.
				Position:       nil,
				Path:           []Position{},
				Health:         enemy.Health,
				Systems:        map[catalog.System]int{},
				ConfirmedRoles: []catalog.Role{},
				DamagedSlots:   []string{},
			},
		},
		CurrentTurn:    st.CurrentTurn,
		Winner:         st.Winner,
		AutomatedRoles: append([]catalog.Role{}, own.AutomatedRoles...),
		SystemPriority: append([]catalog.System{}, own.SystemPriority...),
	}
}
