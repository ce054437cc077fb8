package email

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToSendEmail = errors.New("email: failed to send")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrInvalidParams     = errors.New("email: invalid params")
)

func configError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

func paramsError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, msg)
}

// sendError marks err as a delivery failure, keeping it in the chain.
func sendError(err error) error {
	return errors.Join(ErrFailedToSendEmail, err)
}
