package checklist

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"riplogcheck/internal/logging"
)

// Engine runs a fixed, ordered list of checks. The order decides which
// failure is reported first; it never changes which deductions apply.
type Engine struct {
	profile string
	checks  []Check
	table   DeductionTable
	logger  *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger attaches a logger that receives per-check debug lines and a
// warning when a run aborts.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine validates the check list and returns an engine bound to table.
// The check slice is copied.
func NewEngine(profile string, table DeductionTable, checks []Check, opts ...Option) (*Engine, error) {
	if len(checks) == 0 {
		return nil, errors.New("checklist engine: no checks supplied")
	}
	seen := make(map[CriterionID]struct{}, len(checks))
	copied := make([]Check, 0, len(checks))
	for i, check := range checks {
		if check == nil {
			return nil, fmt.Errorf("checklist engine: check %d is nil", i)
		}
		criterion := check.Criterion()
		if criterion == "" {
			return nil, fmt.Errorf("checklist engine: check %d has no criterion", i)
		}
		if _, dup := seen[criterion]; dup {
			return nil, fmt.Errorf("checklist engine: duplicate check for %s", criterion)
		}
		seen[criterion] = struct{}{}
		copied = append(copied, check)
	}
	engine := &Engine{
		profile: profile,
		checks:  copied,
		table:   table,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	engine.logger = logging.NewComponentLogger(engine.logger, "checklist").With(
		logging.String(logging.FieldProfile, profile),
	)
	return engine, nil
}

// Profile returns the profile name the engine was built for.
func (e *Engine) Profile() string { return e.profile }

// Table returns the deduction table.
func (e *Engine) Table() DeductionTable { return e.table }

// Criteria lists the criteria in checklist order.
func (e *Engine) Criteria() []CriterionID {
	out := make([]CriterionID, len(e.checks))
	for i, check := range e.checks {
		out[i] = check.Criterion()
	}
	return out
}

// EvaluateText is Evaluate for raw text.
func (e *Engine) EvaluateText(text string) (*Result, error) {
	return e.Evaluate(NewDocument(text))
}

// Evaluate runs every check against doc. On success the result holds
// exactly one flag per criterion and DeductedPoints matches the flags. An
// empty document yields ErrEmptyInput; an Indeterminate check yields a
// *CheckFailedError and no result.
func (e *Engine) Evaluate(doc Document) (*Result, error) {
	if doc.Empty() {
		return nil, ErrEmptyInput
	}
	r := newRun(e, doc)
	for r.step() {
	}
	if r.state == runAborted {
		return nil, r.failure
	}
	return r.result, nil
}

type runState int

const (
	runPending runState = iota
	runRunning
	runCompleted
	runAborted
)

// run holds the state of one evaluation: the index of the next check and
// the accumulator built so far.
type run struct {
	engine  *Engine
	doc     Document
	state   runState
	next    int
	result  *Result
	failure *CheckFailedError
}

func newRun(engine *Engine, doc Document) *run {
	return &run{
		engine: engine,
		doc:    doc,
		state:  runPending,
		result: newResult(engine.profile, len(engine.checks)),
	}
}

// step executes the next check and reports whether another step remains.
func (r *run) step() bool {
	switch r.state {
	case runCompleted, runAborted:
		return false
	case runPending:
		r.state = runRunning
	}
	if r.next >= len(r.engine.checks) {
		r.state = runCompleted
		return false
	}

	check := r.engine.checks[r.next]
	criterion := check.Criterion()
	started := time.Now()
	outcome, err := check.Run(r.doc)
	if outcome != Satisfied && outcome != Violated {
		if err == nil {
			err = fmt.Errorf("unexpected outcome %s", outcome)
		}
		r.failure = &CheckFailedError{Criterion: criterion, Err: err}
		r.state = runAborted
		r.engine.logger.Warn("checklist aborted",
			logging.String(logging.FieldEventType, "checklist_aborted"),
			logging.String(logging.FieldCriterion, string(criterion)),
			logging.Int("check_index", r.next),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no score is reported for this log"))
		return false
	}

	r.result.record(criterion, outcome, r.engine.table)
	r.engine.logger.Debug("check evaluated",
		logging.String(logging.FieldCriterion, string(criterion)),
		logging.String("outcome", outcome.String()),
		logging.Int("weight", r.engine.table.Weight(criterion)),
		logging.Duration("elapsed", time.Since(started)))
	r.next++
	if r.next >= len(r.engine.checks) {
		r.state = runCompleted
		return false
	}
	return true
}
