package services

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/models"
	"github.com/BennettDISH/admiral-undersea/persistence"
)

// Codes avoid 0/O and 1/I so they survive being read out loud across a
// table.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

// ErrNoAssignment means the user has no persisted team/role selection for
// the game yet.
var ErrNoAssignment = errors.New("no team assignment for player")

// GameService is the lobby-side collaborator: durable game rows, crew
// assignment snapshots and final results. The gameplay core never touches
// storage itself.
type GameService struct {
	db  persistence.Database
	rng *rand.Rand
}

func NewGameService(db persistence.Database) *GameService {
	return &GameService{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *GameService) generateCode() string {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[s.rng.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// CreateGame makes a lobby row under a fresh unique code.
func (s *GameService) CreateGame(createdBy int64, sameRoom bool, gameMode string) (*models.Game, error) {
	code := s.generateCode()
	for {
		_, err := s.db.GetGameByCode(code)
		if errors.Is(err, persistence.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		code = s.generateCode()
	}
	return s.db.CreateGame(code, createdBy, sameRoom, gameMode)
}

func (s *GameService) GetGame(code string) (*models.Game, error) {
	return s.db.GetGameByCode(strings.ToUpper(code))
}

// Assignment returns the persisted team/role snapshot for a user joining a
// game, or ErrNoAssignment when there is none yet.
func (s *GameService) Assignment(code string, userID int64) (*models.PlayerAssignment, error) {
	game, err := s.db.GetGameByCode(code)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, ErrNoAssignment
		}
		return nil, err
	}

	assignment, err := s.db.GetPlayerAssignment(game.ID, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, ErrNoAssignment
		}
		return nil, err
	}
	return assignment, nil
}

// SelectTeam persists a user's team choice for the game.
func (s *GameService) SelectTeam(code string, userID int64, team catalog.Team) error {
	game, err := s.db.GetGameByCode(code)
	if err != nil {
		return err
	}
	return s.db.UpsertPlayerTeam(game.ID, userID, team)
}

// SelectRoles persists a user's role choices for the game.
func (s *GameService) SelectRoles(code string, userID int64, roles []catalog.Role) error {
	game, err := s.db.GetGameByCode(code)
	if err != nil {
		return err
	}
	return s.db.UpdatePlayerRoles(game.ID, userID, roles)
}

// MarkStarted flips the game row to playing.
func (s *GameService) MarkStarted(code string) error {
	return s.db.SetGameStatus(code, "playing")
}

// RecordResult writes the final result row and closes the game row.
func (s *GameService) RecordResult(code string, winner catalog.Team) error {
	if err := s.db.SetGameStatus(code, "finished"); err != nil {
		return err
	}
	return s.db.SaveGameRecord(&models.GameRecord{
		Code:       code,
		Winner:     winner,
		FinishedAt: time.Now(),
	})
}
