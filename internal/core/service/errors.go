package service

import "errors"

// persistError marks a failed snapshot write. The in-memory change that
// preceded it is kept.
type persistError struct {
	err error
}

func (e *persistError) Error() string { return "persist snapshot: " + e.err.Error() }

func (e *persistError) Unwrap() error { return e.err }

func isPersistError(err error) bool {
	var pe *persistError
	return errors.As(err, &pe)
}
