package report

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"riplogcheck/internal/batch"
	"riplogcheck/internal/checklist"
)

// MaxScore is the score of a log with no deductions.
const MaxScore = 100

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json, or yaml)", value)
	}
}

// Score converts deducted points to a 0-100 score.
func Score(deducted int) int {
	return max(0, MaxScore-deducted)
}

// Criterion is one row of a log's report.
type Criterion struct {
	ID          checklist.CriterionID `json:"criterion" yaml:"criterion"`
	Description string                `json:"description" yaml:"description"`
	Violated    bool                  `json:"violated" yaml:"violated"`
	Weight      int                   `json:"weight" yaml:"weight"`
	Points      int                   `json:"points" yaml:"points"`
}

// Log is the rendered outcome of one file.
type Log struct {
	Path           string                  `json:"path" yaml:"path"`
	RunID          string                  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Profile        string                  `json:"profile,omitempty" yaml:"profile,omitempty"`
	DeductedPoints int                     `json:"deducted_points" yaml:"deducted_points"`
	Score          int                     `json:"score" yaml:"score"`
	Violations     []checklist.CriterionID `json:"violations" yaml:"violations"`
	Criteria       []Criterion             `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Error          string                  `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS     int64                   `json:"duration_ms" yaml:"duration_ms"`
}

// Failed reports whether the log has no result.
func (l Log) Failed() bool { return l.Error != "" }

// Summary aggregates a set of logs.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Evaluated int `json:"evaluated" yaml:"evaluated"`
	Failed    int `json:"failed" yaml:"failed"`
	Clean     int `json:"clean" yaml:"clean"`
	// Violations counts how many logs violated each criterion.
	Violations map[checklist.CriterionID]int `json:"violations" yaml:"violations"`
}

// Document is the top-level JSON/YAML payload.
type Document struct {
	Logs    []Log   `json:"logs" yaml:"logs"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// FromResult builds a Log from a completed evaluation.
func FromResult(path string, result *checklist.Result, table checklist.DeductionTable) Log {
	log := Log{
		Path:           path,
		Profile:        result.Profile,
		DeductedPoints: result.DeductedPoints,
		Score:          Score(result.DeductedPoints),
		Violations:     result.Violations(),
	}
	if log.Violations == nil {
		log.Violations = []checklist.CriterionID{}
	}
	log.Criteria = lo.Map(result.Criteria(), func(id checklist.CriterionID, _ int) Criterion {
		row := Criterion{
			ID:          id,
			Description: id.Description(),
			Violated:    result.Violated(id),
			Weight:      table.Weight(id),
		}
		if row.Violated {
			row.Points = row.Weight
		}
		return row
	})
	return log
}

// FromBatch converts runner output, keeping its order.
func FromBatch(reports []batch.FileReport, table checklist.DeductionTable) []Log {
	return lo.Map(reports, func(r batch.FileReport, _ int) Log {
		var log Log
		if r.Failed() {
			log = Log{Path: r.Path, Error: r.Err.Error(), Violations: []checklist.CriterionID{}}
		} else {
			log = FromResult(r.Path, r.Result, table)
		}
		log.DurationMS = r.Duration.Milliseconds()
		return log
	})
}

// Summarize aggregates logs.
func Summarize(logs []Log) Summary {
	evaluated := lo.Reject(logs, func(l Log, _ int) bool { return l.Failed() })
	summary := Summary{
		Total:     len(logs),
		Evaluated: len(evaluated),
		Failed:    len(logs) - len(evaluated),
		Clean:     lo.CountBy(evaluated, func(l Log) bool { return len(l.Violations) == 0 }),
	}
	summary.Violations = lo.CountValues(lo.FlatMap(evaluated, func(l Log, _ int) []checklist.CriterionID {
		return l.Violations
	}))
	return summary
}

// NewDocument pairs logs with their summary.
func NewDocument(logs []Log) Document {
	if logs == nil {
		logs = []Log{}
	}
	return Document{Logs: logs, Summary: Summarize(logs)}
}
