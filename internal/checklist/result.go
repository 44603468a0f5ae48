package checklist

// Result accumulates the outcome of one checklist run. A criterion appears
// in Flags iff its check executed; true means violated.
type Result struct {
	Profile        string               `json:"profile" yaml:"profile"`
	DeductedPoints int                  `json:"deducted_points" yaml:"deducted_points"`
	Flags          map[CriterionID]bool `json:"flags" yaml:"flags"`

	order []CriterionID
}

func newResult(profile string, capacity int) *Result {
	return &Result{
		Profile: profile,
		Flags:   make(map[CriterionID]bool, capacity),
		order:   make([]CriterionID, 0, capacity),
	}
}

func (r *Result) record(criterion CriterionID, outcome Outcome, table DeductionTable) {
	if _, seen := r.Flags[criterion]; !seen {
		r.order = append(r.order, criterion)
	}
	switch outcome {
	case Satisfied:
		r.Flags[criterion] = false
	case Violated:
		r.Flags[criterion] = true
		r.DeductedPoints = addPoints(r.DeductedPoints, table.Weight(criterion))
	}
}

// Violated reports whether criterion was flagged.
func (r *Result) Violated(criterion CriterionID) bool {
	return r.Flags[criterion]
}

// Criteria returns the evaluated criteria in checklist order.
func (r *Result) Criteria() []CriterionID {
	out := make([]CriterionID, len(r.order))
	copy(out, r.order)
	return out
}

// Violations returns the violated criteria in checklist order.
func (r *Result) Violations() []CriterionID {
	var out []CriterionID
	for _, criterion := range r.order {
		if r.Flags[criterion] {
			out = append(out, criterion)
		}
	}
	return out
}

// Recompute derives the deducted points from the flags alone. For any
// completed run it equals DeductedPoints.
func (r *Result) Recompute(table DeductionTable) int {
	total := 0
	for criterion, violated := range r.Flags {
		if violated {
			total = addPoints(total, table.Weight(criterion))
		}
	}
	return total
}

// Clone returns an independent copy.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	clone := newResult(r.Profile, len(r.Flags))
	clone.DeductedPoints = r.DeductedPoints
	for criterion, violated := range r.Flags {
		clone.Flags[criterion] = violated
	}
	clone.order = append(clone.order, r.order...)
	return clone
}

// RestoreOrder sets the checklist order on a Result decoded from storage.
// Criteria not present in Flags are ignored.
func (r *Result) RestoreOrder(order []CriterionID) {
	r.order = r.order[:0]
	for _, criterion := range order {
		if _, ok := r.Flags[criterion]; ok {
			r.order = append(r.order, criterion)
		}
	}
}
