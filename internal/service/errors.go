package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")                       // unknown email or wrong password
	ErrRiderNotFound      = errors.New("invalid code")                              // no rider has the code; shared by CheckRiderCode and UpdateStatus
	ErrAdminAlreadyExists = errors.New("an account with this email already exists") // email already registered
	ErrCodeSpaceExhausted = errors.New("could not allocate a free rider code")      // every draw collided
	ErrCooldownActive     = errors.New("status update cooldown active")             // matched by any *CooldownError
)

// CooldownError rejects a status update that arrives inside the cooldown
// window of the previous accepted one.
type CooldownError struct {
	Window    time.Duration
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	if e.Window%time.Minute == 0 {
		return fmt.Sprintf("Wait %d mins", int(e.Window/time.Minute))
	}
	return fmt.Sprintf("Wait %s", e.Window)
}

// Is lets errors.Is(err, ErrCooldownActive) match any CooldownError
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
