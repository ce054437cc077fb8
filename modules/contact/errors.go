package contact

import "errors"

var (
	ErrSessionNotFound = errors.New("contact: session not found or expired")
	ErrRegistryClosed  = errors.New("contact: session registry is closed")
)
