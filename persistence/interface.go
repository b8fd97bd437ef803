// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/models"
)

// Database is the durable store for lobby rows: games, who crews them, and
// final results. It never holds mid-game state; a failure here is logged
// and gameplay carries on from memory.
type Database interface {
	CreateGame(code string, createdBy int64, sameRoom bool, gameMode string) (*models.Game, error)
	GetGameByCode(code string) (*models.Game, error)
	UpsertPlayerTeam(gameID, userID int64, team catalog.Team) error
	UpdatePlayerRoles(gameID, userID int64, roles []catalog.Role) error
	GetPlayerAssignment(gameID, userID int64) (*models.PlayerAssignment, error)
	SetGameStatus(code, status string) error
	SaveGameRecord(record *models.GameRecord) error
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
