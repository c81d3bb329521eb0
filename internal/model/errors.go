package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")

	// Match errors
	ErrMatchNotFound     = errors.New("match not found")
	ErrStatNotFound      = errors.New("match stats not found")
	ErrInvalidSubmission = errors.New("invalid match submission")
)
