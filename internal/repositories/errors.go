package repositories

import "errors"

// Sentinel errors returned by the store functions. Handlers map these onto
// HTTP statuses; anything else is a 500.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyLiked  = errors.New("like already exists")
	ErrLikeNotFound  = errors.New("like does not exist")
)
