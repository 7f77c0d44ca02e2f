package repository

import "errors"

var (
	// ErrEventNotFound is returned when an event is absent or not owned
	// by the requesting user.
	ErrEventNotFound = errors.New("event not found")
	// ErrCalendarNotFound is returned when a calendar is absent or not
	// owned by the requesting user.
	ErrCalendarNotFound = errors.New("calendar not found")
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists is returned when a user with the same email already exists
	ErrEmailAlreadyExists = errors.New("email already exists")
)
