// Package errs defines the error taxonomy shared by the game, lobby and registry services.
//
// Services declare their errors as typed string constants so callers can classify them with
// errors.As without inspecting messages:
//
//	const ErrNotYourTurn errs.IllegalAction = "not your turn"
package errs

import "errors"

// NotFound is returned for unknown rooms, games, players, properties or trades
type NotFound string

// Error implements the error interface
func (e NotFound) Error() string {
	return string(e)
}

// IllegalAction is returned when an action breaks a game rule (wrong turn, wrong phase,
// insufficient funds, ...). Shared state is never modified when it is returned.
type IllegalAction string

// Error implements the error interface
func (e IllegalAction) Error() string {
	return string(e)
}

// InvariantViolation marks a programming fault detected after a mutation
type InvariantViolation string

// Error implements the error interface
func (e InvariantViolation) Error() string {
	return string(e)
}

// IsNotFound reports whether any error in err's chain is a NotFound
func IsNotFound(err error) bool {
	var target NotFound
	return errors.As(err, &target)
}

// IsIllegalAction reports whether any error in err's chain is an IllegalAction
func IsIllegalAction(err error) bool {
	var target IllegalAction
	return errors.As(err, &target)
}

// IsInvariant reports whether any error in err's chain is an InvariantViolation
func IsInvariant(err error) bool {
	var target InvariantViolation
	return errors.As(err, &target)
}

// IsUserError reports whether err should be reported back to the acting client as-is
func IsUserError(err error) bool {
	return IsNotFound(err) || IsIllegalAction(err)
}
