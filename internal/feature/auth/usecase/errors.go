// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned by Signin when the email is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned by Signup when the password is too short.
	ErrWeakPassword = errors.New("password too short")

	// ErrUnauthenticated is returned by Authenticate when the token is missing, invalid, expired,
	// or names a user that no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")
)
