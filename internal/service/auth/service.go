package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/pkg/auth"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
	"github.com/tuaha311/aesthetics-clinic/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, please try again later")
	ErrInactiveAccount    = errors.New("account cannot use the admin console")
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// Session is the outcome of a successful login.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	users    repository.UserRepository
	hasher   security.PasswordHasher
	jwtSvc   auth.JWTService
	attempts *cache.Cache
	metrics  *metrics.Metrics
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService, m *metrics.Metrics) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
		attempts: cache.New(lockoutDuration, 2*lockoutDuration),
		metrics:  m,
	}
}

func attemptKey(username string) string {
	return "login:" + strings.ToLower(username)
}

// Login checks the credentials of a staff account. Five failures for one username lock
// it out for fifteen minutes, whether or not the account exists.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	key := attemptKey(username)
	if n, ok := s.attempts.Get(key); ok && n.(int) >= maxLoginAttempts {
		s.metrics.AdminLogins.WithLabelValues("locked").Inc()
		return nil, ErrAccountLocked
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		s.recordFailure(key)
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.recordFailure(key)
		return nil, ErrInvalidCredentials
	}
	if !user.CanUseAdmin() {
		s.metrics.AdminLogins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	s.attempts.Delete(key)

	now := model.Now()
	if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}
	user.LastLogin = sql.NullTime{Time: now, Valid: true}

	token, expires, err := s.jwtSvc.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.metrics.AdminLogins.WithLabelValues("success").Inc()
	log.Info().Str("username", user.Username).Msg("admin login")

	return &Session{User: user, Token: token, ExpiresAt: expires}, nil
}

func (s *Service) recordFailure(key string) {
	s.metrics.AdminLogins.WithLabelValues("failure").Inc()
	if _, found := s.attempts.Get(key); !found {
		s.attempts.Set(key, 1, cache.DefaultExpiration)
		return
	}
	if _, err := s.attempts.IncrementInt(key, 1); err != nil {
		s.attempts.Set(key, 1, cache.DefaultExpiration)
	}
}

// Authenticate resolves a session token into the staff account it belongs to.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid user ID in token"))
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, err
	}
	if !user.CanUseAdmin() {
		return nil, apperrors.Unauthorized(ErrInactiveAccount)
	}
	return user, nil
}

// ChangePassword replaces the password of user after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, user *model.User, current, next string) error {
	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return apperrors.NewValidation("Your old password was entered incorrectly. Please enter it again.", err)
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return apperrors.NewValidation(fmt.Sprintf("This password is too short. It must contain at least %d characters.", security.MinPasswordLen), err)
		}
		return err
	}
	if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}
