// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/models"
)

// PostgreSQL is the raw database/sql implementation of Database, for
// deployments that prefer plain SQL over the ORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS games (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            status TEXT NOT NULL DEFAULT 'lobby',
            same_room BOOLEAN NOT NULL DEFAULT FALSE,
            game_mode TEXT NOT NULL DEFAULT 'turn-based',
            created_by BIGINT,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            started_at TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_players (
            id SERIAL PRIMARY KEY,
            game_id BIGINT NOT NULL,
            user_id BIGINT NOT NULL,
            team TEXT NOT NULL DEFAULT '',
            roles TEXT NOT NULL DEFAULT '',
            joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            UNIQUE (game_id, user_id)
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            code TEXT NOT NULL,
            winner TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	return err
}

func (p *PostgreSQL) CreateGame(code string, createdBy int64, sameRoom bool, gameMode string) (*models.Game, error) {
	game := &models.Game{
		Code:      code,
		Status:    "lobby",
		SameRoom:  sameRoom,
		GameMode:  gameMode,
		CreatedBy: createdBy,
	}
	err := p.db.QueryRow(`
        INSERT INTO games (code, status, same_room, game_mode, created_by)
        VALUES ($1, 'lobby', $2, $3, $4)
        RETURNING id, created_at`,
		code, sameRoom, gameMode, createdBy,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (p *PostgreSQL) GetGameByCode(code string) (*models.Game, error) {
	game := &models.Game{}
	var startedAt sql.NullTime
	err := p.db.QueryRow(`
        SELECT id, code, status, same_room, game_mode, COALESCE(created_by, 0), created_at, started_at
        FROM games WHERE code = $1`,
		code,
	).Scan(&game.ID, &game.Code, &game.Status, &game.SameRoom, &game.GameMode,
		&game.CreatedBy, &game.CreatedAt, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		game.StartedAt = &startedAt.Time
	}
	return game, nil
}

func (p *PostgreSQL) UpsertPlayerTeam(gameID, userID int64, team catalog.Team) error {
	_, err := p.db.Exec(`
        INSERT INTO game_players (game_id, user_id, team)
        VALUES ($1, $2, $3)
        ON CONFLICT (game_id, user_id)
        DO UPDATE SET team = $3`,
		gameID, userID, string(team))
	return err
}

func (p *PostgreSQL) UpdatePlayerRoles(gameID, userID int64, roles []catalog.Role) error {
	_, err := p.db.Exec(`
        UPDATE game_players SET roles = $1 WHERE game_id = $2 AND user_id = $3`,
		joinRoles(roles), gameID, userID)
	return err
}

func (p *PostgreSQL) GetPlayerAssignment(gameID, userID int64) (*models.PlayerAssignment, error) {
	var team, rolesCSV string
	err := p.db.QueryRow(`
        SELECT team, roles FROM game_players WHERE game_id = $1 AND user_id = $2`,
		gameID, userID,
	).Scan(&team, &rolesCSV)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.PlayerAssignment{
		GameID: gameID,
		UserID: userID,
		Team:   catalog.Team(team),
		Roles:  splitRoles(rolesCSV),
	}, nil
}

func (p *PostgreSQL) SetGameStatus(code, status string) error {
	if status == "playing" {
		_, err := p.db.Exec(`
            UPDATE games SET status = $1, started_at = NOW() WHERE code = $2`, status, code)
		return err
	}
	_, err := p.db.Exec(`UPDATE games SET status = $1 WHERE code = $2`, status, code)
	return err
}

func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	_, err := p.db.Exec(`
        INSERT INTO game_records (code, winner) VALUES ($1, $2)`,
		record.Code, string(record.Winner))
	return err
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
