package domain

import "errors"

var (
	// ErrEntryNotFound signals a missing vocabulary entry.
	ErrEntryNotFound = errors.New("vocabulary entry not found")
	// ErrGatewayUnavailable signals a translation gateway transport failure.
	ErrGatewayUnavailable = errors.New("translation gateway unavailable")
	// ErrGatewayInvalidResponse signals a gateway reply that failed validation.
	ErrGatewayInvalidResponse = errors.New("invalid translation gateway response")
)
