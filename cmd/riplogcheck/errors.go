package main

import "fmt"

const (
	exitCodeFailure   = 1
	exitCodeViolation = 2
)

// exitError carries a process exit code out of a command. A nil err means
// the command already printed everything the user needs.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }
