package types

import "errors"

var (
	ErrNoDriversAvailable = errors.New("no drivers available")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrDriverOnMission    = errors.New("driver has an active mission")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrMissionNotFound    = errors.New("mission not found")
	ErrMissionCompleted   = errors.New("mission already completed")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already exists")
	ErrNotFound     = errors.New("requested item not found")
)
