package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/Yun12-yu/smart-taxis/pkg/passhash"
	"github.com/google/uuid"
)

// Session is what a successful login hands to the client.
type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type Service struct {
	users  UserRepo
	tokens TokenProvider
	log    logger.Logger
}

func NewService(users UserRepo, tokens TokenProvider, log logger.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// Register creates a driver-role account. Administrative accounts are only
// bootstrapped from configuration, never through the API.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "register")

	hash, err := passhash.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return nil, ErrUnexpected
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     types.RoleDriver,
	}
	user.SetPasswordHash(hash)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, types.ErrUserExists) {
			return nil, err
		}
		s.log.Error(ctx, "failed to save user", err)
		return nil, ErrUnexpected
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID.String(), "username", username)
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator unless an account with
// that username already exists. Called once at startup.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	ctx = wrap.WithAction(ctx, "ensure_admin")

	if _, err := s.users.GetByLogin(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, types.ErrUserNotFound) {
		return err
	}

	hash, err := passhash.HashPassword(password)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	admin := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     types.RoleAdmin,
	}
	admin.SetPasswordHash(hash)

	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, types.ErrUserExists) {
			return nil
		}
		return wrap.Error(ctx, err)
	}

	s.log.Info(ctx, "bootstrap admin created", "username", username)
	return nil
}

// Login checks the credentials and issues an access token. The login field
// accepts either the username or the email.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	ctx = wrap.WithAction(ctx, "login")

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrUnexpected
	}

	if ok, err := passhash.VerifyPassword(password, user.PasswordHash()); err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.log.Error(ctx, "failed to generate access token", err)
		return nil, ErrTokenGenerateFail
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrTokenGenerateFail
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID.String())

	return &Session{
		User:      user,
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Authenticate validates the access token and loads its user, for the
// request middleware.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, ErrUnexpected
	}

	return user, nil
}
