package checklist

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the log text is empty. No check runs.
var ErrEmptyInput = errors.New("log is empty")

// ErrCheckFailed matches every CheckFailedError via errors.Is.
var ErrCheckFailed = errors.New("check failed")

// CheckFailedError reports that a check's matcher failed, aborting the run.
// No partial result accompanies it.
type CheckFailedError struct {
	Criterion CriterionID
	Err       error
}

func (e *CheckFailedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("check %s failed", e.Criterion)
	}
	return fmt.Sprintf("check %s failed: %v", e.Criterion, e.Err)
}

func (e *CheckFailedError) Unwrap() error { return e.Err }

func (e *CheckFailedError) Is(target error) bool { return target == ErrCheckFailed }
