package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sprintboard/internal/config"
	"sprintboard/internal/logger"
	"sprintboard/internal/models/user"
	rep "sprintboard/internal/repository"
	"sprintboard/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthRepository interface {
	rep.UserRepository
	rep.TokenRepository
}

type AuthService struct {
	repo     AuthRepository
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(repo AuthRepository, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokenTTL: tokenTTL, now: time.Now}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

const msgBadCredentials = "The provided credentials are incorrect."

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if errs := validation.Struct(&in); len(errs) > 0 {
		return nil, FromValidation(errs)
	}

	acc, err := s.repo.UserByEmail(ctx, in.Email)
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Неизвестный email при входе")
		return nil, NewValidationError("email", msgBadCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(in.Password)); err != nil {
		logger.Info("Service: Неверный пароль", zap.Int64("user_id", acc.ID))
		return nil, NewValidationError("email", msgBadCredentials)
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.repo.CreateToken(ctx, token, acc.ID, s.now().Add(s.tokenTTL)); err != nil {
		return nil, fmt.Errorf("создание токена: %w", err)
	}

	logger.Info("Service: Пользователь вошёл", zap.Int64("user_id", acc.ID))
	return &LoginResult{User: acc.User, Token: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeleteToken(ctx, token); err != nil {
		return fmt.Errorf("удаление токена: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, NewUnauthorized("Unauthenticated.")
	}
	u, err := s.repo.UserByToken(ctx, token, s.now())
	if errors.Is(err, rep.ErrNotFound) {
		return nil, NewUnauthorized("Unauthenticated.")
	}
	if err != nil {
		return nil, fmt.Errorf("проверка токена: %w", err)
	}
	return u, nil
}

// SeedUsers creates the configured accounts that do not exist yet.
func (s *AuthService) SeedUsers(ctx context.Context, users []config.SeedUser) error {
	for _, su := range users {
		_, err := s.repo.UserByEmail(ctx, su.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, rep.ErrNotFound) {
			return fmt.Errorf("поиск пользователя %s: %w", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("хеширование пароля: %w", err)
		}

		acc := &user.Account{User: user.User{Name: su.Name, Email: su.Email}, PasswordHash: hash}
		if err := s.repo.CreateUser(ctx, acc); err != nil && !errors.Is(err, rep.ErrConflict) {
			return fmt.Errorf("создание пользователя %s: %w", su.Email, err)
		}
		logger.Info("Service: Пользователь создан", zap.String("email", su.Email))
	}
	return nil
}
