// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormGame maps the games table.
type GormGame struct {
	gorm.Model
	Code      string `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"not null;default:lobby"`
	SameRoom  bool   `gorm:"default:false"`
	GameMode  string `gorm:"default:turn-based"`
	CreatedBy int64  `gorm:"index"`
	StartedAt *time.Time
}

// GormGamePlayer maps the game_players table. Roles are stored as a
// comma-separated list, matching what the lobby writes.
type GormGamePlayer struct {
	gorm.Model
	GameID int64  `gorm:"uniqueIndex:idx_game_user;not null"`
	UserID int64  `gorm:"uniqueIndex:idx_game_user;not null"`
	Team   string `gorm:"default:''"`
	Roles  string `gorm:"default:''"`
}

// GormGameRecord maps the game_records table.
type GormGameRecord struct {
	gorm.Model
	Code   string `gorm:"index;not null"`
	Winner string `gorm:"not null"`
}
