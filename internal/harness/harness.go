package harness

import (
	"context"
	"fmt"

	"github.com/roach88/unsei/internal/engine"
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/store"
)

// Harness holds the per-run state of a scenario execution.
type Harness struct {
	store *store.Store
	clock *engine.Clock
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory store. Every case is
// computed, written with a logical seq starting at 1 and read back, so
// the records in the result are the ones a stored batch would serve.
//
// Execution flow:
// 1. Compute and store every case
// 2. Match each case's expectations against its record
// 3. Evaluate properties over their date ranges
//
// A returned error means the run itself broke (store failure); failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, clock: engine.NewClock()}
	ctx := context.Background()
	result := NewResult()

	for i, c := range scenario.Cases {
		if err := h.runCase(ctx, i, c, result); err != nil {
			return nil, err
		}
	}

	for i, p := range scenario.Properties {
		for _, msg := range evaluateProperty(p) {
			result.AddError(fmt.Sprintf("properties[%d] %s: %s", i, p.Type, msg))
		}
	}

	return result, nil
}

func (h *Harness) runCase(ctx context.Context, i int, c Case, result *Result) error {
	date, err := ir.ParseCalendarDate(c.Date)
	if err != nil {
		result.AddError(fmt.Sprintf("cases[%d]: %v", i, err))
		return nil
	}

	r, err := engine.Compute(date)
	if err != nil {
		result.AddError(fmt.Sprintf("cases[%d] %s: %v", i, c.Date, err))
		return nil
	}

	seq := h.clock.Next()
	if _, err := h.store.WriteResult(ctx, r.Record(), "", seq); err != nil {
		return fmt.Errorf("case %s: %w", c.Date, err)
	}
	rec, ok, err := h.store.ReadResult(ctx, date)
	if err != nil {
		return fmt.Errorf("case %s: %w", c.Date, err)
	}
	if !ok {
		return fmt.Errorf("case %s: record missing after write", c.Date)
	}

	id, err := ir.ResultID(rec)
	if err != nil {
		return fmt.Errorf("case %s: %w", c.Date, err)
	}
	result.Cases = append(result.Cases, CaseResult{Date: date.String(), ID: id, Seq: seq, Record: rec})

	if err := matchExpect(rec, c.Expect); err != nil {
		result.AddError(fmt.Sprintf("cases[%d] %s: %v", i, c.Date, err))
	}
	return nil
}
