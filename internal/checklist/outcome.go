package checklist

// Outcome is the tagged result of evaluating one criterion.
type Outcome int

const (
	// Satisfied means the expected line was found.
	Satisfied Outcome = iota
	// Violated means the log is non-compliant on this criterion. It is
	// normal checklist output, not an error.
	Violated
	// Indeterminate means the matcher itself failed; the whole run aborts.
	Indeterminate
)

func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "satisfied"
	case Violated:
		return "violated"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}
