package harness

import "github.com/roach88/unsei/internal/ir"

// CaseResult is the computed record for one scenario case.
type CaseResult struct {
	Date   string    `json:"date"`
	ID     string    `json:"id"`
	Seq    int64     `json:"seq"`
	Record ir.Record `json:"record"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expectation and property held.
	Pass bool `json:"pass"`

	// Cases holds the records read back from the run's store, in case
	// order. Used for golden comparison.
	Cases []CaseResult `json:"cases"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
