package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("an account already exists with this email")

	// ErrInvalidCredentials is deliberately generic: it must not reveal
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
