package inmemory

import (
	"context"
	"strings"
	"time"

	"sprintboard/internal/models/user"
	repo "sprintboard/internal/repository"
)

func (s *Storage) CreateUser(ctx context.Context, account *user.Account) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, account.Email) {
			return repo.ErrConflict
		}
	}

	s.lastUserID++
	account.ID = s.lastUserID
	stored := *account
	s.users[account.ID] = &stored
	s.userIDs = append(s.userIDs, account.ID)
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*user.Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.userIDs {
		if acc := s.users[id]; strings.EqualFold(acc.Email, email) {
			found := *acc
			return &found, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *Storage) UserByID(ctx context.Context, id int64) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	acc, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u := acc.User
	return &u, nil
}

func (s *Storage) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tokens[token]; ok {
		return repo.ErrConflict
	}
	s.tokens[token] = tokenEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *Storage) UserByToken(ctx context.Context, token string, now time.Time) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	entry, ok := s.tokens[token]
	if !ok || !now.Before(entry.expiresAt) {
		return nil, repo.ErrNotFound
	}
	acc, ok := s.users[entry.userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u := acc.User
	return &u, nil
}

func (s *Storage) DeleteToken(ctx context.Context, token string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.tokens, token)
	return nil
}
