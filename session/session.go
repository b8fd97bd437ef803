package session

import (
	"sync"
	"time"

	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// Session is one connected socket and the crew identity attached to it. The
// team/role assignment is a snapshot consumed at join time; the surrounding
// layer persists lobby selections independently.
type Session struct {
	ID         string
	Conn       network.Connection
	UserID     int64
	Username   string
	GameCode   string
	CreatedAt  time.Time
	LastActive time.Time

	team  catalog.Team
	roles []catalog.Role
	mutex sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) SetTeam(team catalog.Team) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.team = team
}

func (s *Session) Team() catalog.Team {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.team
}

func (s *Session) SetRoles(roles []catalog.Role) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.roles = append([]catalog.Role{}, roles...)
}

func (s *Session) Roles() []catalog.Role {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]catalog.Role{}, s.roles...)
}

func (s *Session) HasRole(role catalog.Role) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, r := range s.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.LastActive = time.Now()
	return s.Conn.Send(msgID, data)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) GetUserID() int64 {
	return s.UserID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks every connected session.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

func (m *Manager) GetByUserID(userID int64) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.UserID == userID {
			result = append(result, session)
		}
	}
	return result
}
