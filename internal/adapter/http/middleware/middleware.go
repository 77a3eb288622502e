package middleware

import (
	"context"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
)

type (
	AuthService interface {
		Authenticate(ctx context.Context, token string) (*models.User, error)
	}

	Middleware struct {
		auth AuthService
		log  logger.Logger
	}
)

func NewMiddleware(auth AuthService, log logger.Logger) *Middleware {
	return &Middleware{
		auth: auth,
		log:  log,
	}
}
