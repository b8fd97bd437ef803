package game

import (
	"sync"
	"time"
)

// Store owns every live GameState, keyed by game code. Sessions exist only
// for the process lifetime; durable storage is the persistence layer's
// problem, never this one's.
type Store struct {
	games map[string]*GameState
	mutex sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*GameState),
	}
}

func (s *Store) Get(code string) (*GameState, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	st, exists := s.games[code]
	return st, exists
}

// GetOrCreate returns the session for code, initializing a fresh one on
// first use. Move-class events create sessions lazily through this.
func (s *Store) GetOrCreate(code string) *GameState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if st, exists := s.games[code]; exists {
		return st
	}
	st := NewGameState(code)
	s.games[code] = st
	return st
}

// Put replaces whatever session exists for the state's code. Game start
// resets a session through this.
func (s *Store) Put(st *GameState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.games[st.Code] = st
}

func (s *Store) Remove(code string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.games, code)
}

func (s *Store) Codes() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	codes := make([]string, 0, len(s.games))
	for code := range s.games {
		codes = append(codes, code)
	}
	return codes
}

func (s *Store) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.games)
}

// ExpireIdle removes sessions with no activity for longer than ttl and
// returns their codes. Driven by a periodic timer task.
func (s *Store) ExpireIdle(ttl time.Duration) []string {
	cutoff := time.Now().Add(-ttl)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var expired []string
	for code, st := range s.games {
		if st.idleSince().Before(cutoff) {
			delete(s.games, code)
			expired = append(expired, code)
		}
	}
	return expired
}
