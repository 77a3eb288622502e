package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrTokenGenerateFail  = errors.New("failed to generate token")
	ErrUnexpected         = errors.New("unexpected error")
)
