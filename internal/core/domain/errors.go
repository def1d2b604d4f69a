package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrBarNotFound        = errors.New("bar not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")

	// One-time token redemption failures stay distinct so the client never
	// mistakes a dead token for a live one.
	ErrTokenInvalid = errors.New("token is not valid")
	ErrTokenUsed    = errors.New("token has already been used")
	ErrTokenExpired = errors.New("token has expired")
)
