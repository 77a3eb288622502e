package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "dispatcher",
		Email:    "dispatcher@example.com",
		Role:     types.RoleAdmin,
	}
}

func TestTokenService_GenerateValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("user id = %s, want %s", claims.UserID, user.ID)
	}
	if claims.Username != user.Username {
		t.Errorf("username = %s, want %s", claims.Username, user.Username)
	}
	if claims.Role != types.RoleAdmin {
		t.Errorf("role = %s, want admin", claims.Role)
	}
	if claims.TokenID == uuid.Nil {
		t.Error("token id is nil")
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Generate(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Validate(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	checker := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := checker.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: got %v, want ErrInvalidToken", token, err)
		}
	}
}
