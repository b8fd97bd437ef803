// models/models.go
package models

import (
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
)

// Game is one lobby row. Gameplay state never lives here; this is the
// durable record the socket layer consults at join time.
type Game struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Status    string     `json:"status"` // lobby / playing / finished
	SameRoom  bool       `json:"sameRoom"`
	GameMode  string     `json:"gameMode"`
	CreatedBy int64      `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// PlayerAssignment is the persisted team/role selection for one user in one
// game, consumed as a snapshot when that user (re)connects.
type PlayerAssignment struct {
	GameID int64          `json:"gameId"`
	UserID int64          `json:"userId"`
	Team   catalog.Team   `json:"team"`
	Roles  []catalog.Role `json:"roles"`
}

// GameRecord is the final result row written when a session concludes.
type GameRecord struct {
	Code       string       `json:"code"`
	Winner     catalog.Team `json:"winner"`
	FinishedAt time.Time    `json:"finishedAt"`
}
