package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrStillInvalid is returned when the form remains invalid after the
	// configured number of correction rounds.
	ErrStillInvalid = errors.New("prompt: form still invalid")
)
