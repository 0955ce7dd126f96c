package game

import "errors"

var (
	// Precondition violations: the action arrived in the wrong phase or
	// from a session the registry no longer knows. Never fatal.
	ErrWrongPhase     = errors.New("action not valid in current phase")
	ErrUnknownSession = errors.New("unknown session")

	// Capacity.
	ErrRoomFull      = errors.New("button is full")
	ErrAlreadyMember = errors.New("already a member of this button")

	// The referenced button/room/user no longer exists, usually a race
	// with a reset or a concurrent leave.
	ErrNotFound = errors.New("not found")
)
