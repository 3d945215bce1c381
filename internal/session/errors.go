package session

import "errors"

var (
	ErrNotFound  = errors.New("session not found")
	ErrClosed    = errors.New("session registry closed")
	ErrInvalidID = errors.New("session id is empty")
)
