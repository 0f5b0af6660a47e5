// Package session holds the authenticated user and bearer token shared by the
// client facade and the CLI.
package session

import (
	"sync"

	"sprintboard/internal/logger"
	"sprintboard/internal/models/user"

	"go.uber.org/zap"
)

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Token string     `yaml:"token"`
	User  *user.User `yaml:"user,omitempty"`
}

// Store persists snapshots between processes.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Remove() error
}

type Session struct {
	mu    sync.RWMutex
	token string
	user  *user.User
	store Store
}

// New returns an empty in-process session.
func New() *Session {
	return &Session{}
}

// Open restores a session from store. Later Init and Clear calls write through to it.
func Open(store Store) (*Session, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{token: snap.Token, user: snap.User, store: store}, nil
}

func (s *Session) Init(token string, u user.User) {
	s.mu.Lock()
	s.token = token
	s.user = &u
	snap := Snapshot{Token: token, User: &u}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(snap); err != nil {
			logger.Warn("Session: не удалось сохранить сессию", zap.Error(err))
		}
	}
}

func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Remove(); err != nil {
			logger.Warn("Session: не удалось удалить сессию", zap.Error(err))
		}
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
