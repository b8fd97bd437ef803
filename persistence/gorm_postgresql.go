// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/models"
)

// GormPostgreSQL is the GORM-backed Database implementation.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.GormGame{},
		&models.GormGamePlayer{},
		&models.GormGameRecord{},
	); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (p *GormPostgreSQL) CreateGame(code string, createdBy int64, sameRoom bool, gameMode string) (*models.Game, error) {
	row := models.GormGame{
		Code:      code,
		Status:    "lobby",
		SameRoom:  sameRoom,
		GameMode:  gameMode,
		CreatedBy: createdBy,
	}
	if err := p.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return gameFromRow(&row), nil
}

func (p *GormPostgreSQL) GetGameByCode(code string) (*models.Game, error) {
	var row models.GormGame
	if err := p.db.Where("code = ?", code).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return gameFromRow(&row), nil
}

func (p *GormPostgreSQL) UpsertPlayerTeam(gameID, userID int64, team catalog.Team) error {
	var row models.GormGamePlayer
	result := p.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.GormGamePlayer{
			GameID: gameID,
			UserID: userID,
			Team:   string(team),
		}
		return p.db.Create(&row).Error
	} else if result.Error != nil {
		return result.Error
	}

	row.Team = string(team)
	return p.db.Save(&row).Error
}

func (p *GormPostgreSQL) UpdatePlayerRoles(gameID, userID int64, roles []catalog.Role) error {
	return p.db.Model(&models.GormGamePlayer{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Update("roles", joinRoles(roles)).Error
}

func (p *GormPostgreSQL) GetPlayerAssignment(gameID, userID int64) (*models.PlayerAssignment, error) {
	var row models.GormGamePlayer
	if err := p.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &models.PlayerAssignment{
		GameID: row.GameID,
		UserID: row.UserID,
		Team:   catalog.Team(row.Team),
		Roles:  splitRoles(row.Roles),
	}, nil
}

func (p *GormPostgreSQL) SetGameStatus(code, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == "playing" {
		now := time.Now()
		updates["started_at"] = &now
	}
	return p.db.Model(&models.GormGame{}).Where("code = ?", code).Updates(updates).Error
}

func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	row := models.GormGameRecord{
		Code:   record.Code,
		Winner: string(record.Winner),
	}
	return p.db.Create(&row).Error
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gameFromRow(row *models.GormGame) *models.Game {
	return &models.Game{
		ID:        int64(row.ID),
		Code:      row.Code,
		Status:    row.Status,
		SameRoom:  row.SameRoom,
		GameMode:  row.GameMode,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		StartedAt: row.StartedAt,
	}
}

// Roles persist as a comma-separated list, the format the lobby always
// wrote.
func joinRoles(roles []catalog.Role) string {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}

func splitRoles(csv string) []catalog.Role {
	var roles []catalog.Role
	for _, part := range strings.Split(csv, ",") {
		role := catalog.Role(strings.TrimSpace(part))
		if role.Valid() {
			roles = append(roles, role)
		}
	}
	return roles
}
