package checklist

import (
	"fmt"
	"math"
	"sort"
)

// MaxWeight bounds a single deduction.
const MaxWeight = math.MaxInt32

// DeductionTable maps each criterion to the points deducted when it is
// violated. Tables are copied on construction and never mutated, so one
// table can be shared by concurrent evaluations.
type DeductionTable struct {
	weights map[CriterionID]int
}

// Deduction is one enumerated table entry.
type Deduction struct {
	Criterion CriterionID `json:"criterion" yaml:"criterion"`
	Weight    int         `json:"weight" yaml:"weight"`
}

// NewDeductionTable copies weights into a new table. Weights outside
// [0, MaxWeight] are rejected.
func NewDeductionTable(weights map[CriterionID]int) (DeductionTable, error) {
	copied := make(map[CriterionID]int, len(weights))
	for criterion, weight := range weights {
		if criterion == "" {
			return DeductionTable{}, fmt.Errorf("deduction table: empty criterion id")
		}
		if weight < 0 {
			return DeductionTable{}, fmt.Errorf("deduction table: weight for %s must be >= 0, got %d", criterion, weight)
		}
		if weight > MaxWeight {
			return DeductionTable{}, fmt.Errorf("deduction table: weight for %s must be <= %d, got %d", criterion, MaxWeight, weight)
		}
		copied[criterion] = weight
	}
	return DeductionTable{weights: copied}, nil
}

// Weight returns the deduction for criterion. Criteria missing from the
// table weigh 0.
func (t DeductionTable) Weight(criterion CriterionID) int {
	return t.weights[criterion]
}

// Has reports whether criterion has an explicit entry.
func (t DeductionTable) Has(criterion CriterionID) bool {
	_, ok := t.weights[criterion]
	return ok
}

// Len returns the number of entries.
func (t DeductionTable) Len() int {
	return len(t.weights)
}

// Entries enumerates the table sorted by criterion ID.
func (t DeductionTable) Entries() []Deduction {
	entries := make([]Deduction, 0, len(t.weights))
	for criterion, weight := range t.weights {
		entries = append(entries, Deduction{Criterion: criterion, Weight: weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Criterion < entries[j].Criterion
	})
	return entries
}

// With returns a copy of the table with overrides applied on top.
func (t DeductionTable) With(overrides map[CriterionID]int) (DeductionTable, error) {
	merged := make(map[CriterionID]int, len(t.weights)+len(overrides))
	for criterion, weight := range t.weights {
		merged[criterion] = weight
	}
	for criterion, weight := range overrides {
		merged[criterion] = weight
	}
	return NewDeductionTable(merged)
}

// addPoints sums deductions, saturating at math.MaxInt.
func addPoints(total, weight int) int {
	if weight > math.MaxInt-total {
		return math.MaxInt
	}
	return total + weight
}
