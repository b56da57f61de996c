// Package common defines shared constants and sentinel errors used across
// client layers of firemap. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrNoSession    = errors.New("no session, please log in again")
	ErrTokenExpired = errors.New("token expired")

	// Input errors.
	ErrorValidation = errors.New("validation error")
)
