package usecase

import "errors"

var (
	// ErrInvalidAPIKey is returned when a submitted key is malformed or a placeholder.
	ErrInvalidAPIKey = errors.New("invalid api key")
	// ErrCredentialMissing means no API key is configured and demo mode is off.
	ErrCredentialMissing = errors.New("api key not configured and demo mode is off")
)
