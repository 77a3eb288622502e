package auth

import (
	"fmt"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the validated content of an access token.
type Claims struct {
	TokenID   uuid.UUID
	UserID    uuid.UUID
	Username  string
	Role      types.UserRole
	ExpiresAt time.Time
}

// TokenService issues and validates HS256 access tokens. Sessions are
// client-held only; nothing token-related is persisted.
type TokenService struct {
	secret    string
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    secret,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

func (s *TokenService) Generate(user *models.User) (string, error) {
	issuedAt := s.now().UTC()

	claims := jwt.MapClaims{
		"jti":      uuid.New().String(),
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role.String(),
		"iat":      issuedAt.Unix(),
		"exp":      issuedAt.Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *TokenService) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIDStr, _ := mc["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid 'user_id' in token claims: %w", ErrInvalidToken)
	}

	tokenIDStr, _ := mc["jti"].(string)
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid 'jti' in token claims: %w", ErrInvalidToken)
	}

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing 'exp' in token claims: %w", ErrInvalidToken)
	}
	expTime := time.Unix(int64(expFloat), 0)
	if s.now().UTC().After(expTime) {
		return nil, ErrExpiredToken
	}

	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)

	return &Claims{
		TokenID:   tokenID,
		UserID:    userID,
		Username:  username,
		Role:      types.UserRole(role),
		ExpiresAt: expTime,
	}, nil
}
