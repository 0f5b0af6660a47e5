package postgres

import (
	"context"
	"time"

	"sprintboard/internal/models/user"
)

func (s *Storage) CreateUser(ctx context.Context, account *user.Account) error {
	defer s.observe("CreateUser", time.Now())

	query := `INSERT INTO users (name, email, password_hash)
				VALUES ($1, $2, $3)
				RETURNING id`

	err := s.pool.QueryRow(ctx, query, account.Name, account.Email, account.PasswordHash).Scan(&account.ID)
	if err != nil {
		return wrap("добавление пользователя", err)
	}
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*user.Account, error) {
	defer s.observe("UserByEmail", time.Now())

	query := `SELECT id, name, email, password_hash
				FROM users
				WHERE LOWER(email) = LOWER($1)`

	var acc user.Account
	err := s.pool.QueryRow(ctx, query, email).Scan(&acc.ID, &acc.Name, &acc.Email, &acc.PasswordHash)
	if err != nil {
		return nil, wrap("получение пользователя по email", err)
	}
	return &acc, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (*user.User, error) {
	defer s.observe("UserByID", time.Now())

	var u user.User
	err := s.pool.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, wrap("получение пользователя", err)
	}
	return &u, nil
}

func (s *Storage) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	defer s.observe("CreateToken", time.Now())

	_, err := s.pool.Exec(ctx, `INSERT INTO tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`, token, userID, expiresAt)
	if err != nil {
		return wrap("создание токена", err)
	}
	return nil
}

func (s *Storage) UserByToken(ctx context.Context, token string, now time.Time) (*user.User, error) {
	defer s.observe("UserByToken", time.Now())

	query := `SELECT u.id, u.name, u.email
				FROM tokens t
				JOIN users u ON u.id = t.user_id
				WHERE t.token = $1 AND t.expires_at > $2`

	var u user.User
	if err := s.pool.QueryRow(ctx, query, token, now).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return nil, wrap("получение пользователя по токену", err)
	}
	return &u, nil
}

func (s *Storage) DeleteToken(ctx context.Context, token string) error {
	defer s.observe("DeleteToken", time.Now())

	if _, err := s.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token); err != nil {
		return wrap("удаление токена", err)
	}
	return nil
}
