package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/unsei/internal/engine"
	"github.com/roach88/unsei/internal/ir"
)

// ComputeOutput is the payload of the compute command.
type ComputeOutput struct {
	ID     string    `json:"id"`
	Record ir.Record `json:"record"`

	result ir.FortuneResult
}

// String renders the analysis block followed by the Sanmeigaku and
// lunar detail.
func (o ComputeOutput) String() string {
	var b strings.Builder
	b.WriteString(o.result.Summary())
	fmt.Fprintf(&b, "・命式: 日柱[%s] / 月柱[%s] / 年柱[%s] / 蔵干[%s]\n",
		o.Record.DayPillar, o.Record.MonthPillar, o.Record.YearPillar, o.Record.HiddenStem)
	fmt.Fprintf(&b, "・旧暦: %s", o.result.Lunar)
	if !o.Record.TzolkinFromTable {
		b.WriteString("\n(マヤ暦: 年表の範囲外のため近似値)")
	}
	return b.String()
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute <date>",
		Short: "Compute the reading for a birth date",
		Long: `Compute every system for one birth date (YYYY-MM-DD).

Exit codes:
  0 - Computed
  1 - Computation failed (root finder did not converge, internal error)
  2 - The date is not a valid Gregorian date

Examples:
  unsei compute 1979-11-22
  unsei compute 2000-01-01 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCompute(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	r, err := computeArg(arg)
	if err != nil {
		return failCompute(formatter, arg, err)
	}
	rec := r.Record()
	id, err := ir.ResultID(rec)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	opts.Logger.Debug().Str("date", rec.BirthDate).Str("id", id).Msg("computed")
	formatter.VerboseLog("Computed %s (id %s)", rec.BirthDate, id)

	return formatter.Success(ComputeOutput{ID: id, Record: rec, result: r})
}

// computeArg parses a date argument and computes it. Parse failures are
// reported as INVALID_DATE runtime errors like engine validation.
func computeArg(arg string) (ir.FortuneResult, error) {
	date, err := parseDateArg(arg)
	if err != nil {
		return ir.FortuneResult{}, err
	}
	return engine.Compute(date)
}

func parseDateArg(arg string) (ir.CalendarDate, error) {
	date, err := ir.ParseCalendarDate(arg)
	if err != nil {
		return ir.CalendarDate{}, &engine.RuntimeError{
			Code:    engine.ErrCodeInvalidDate,
			Message: fmt.Sprintf("cannot parse %q as YYYY-MM-DD", arg),
			Date:    arg,
			Err:     err,
		}
	}
	return date, nil
}

// failCompute maps an engine error to output and an exit code: bad input
// exits 2, anything else 1.
func failCompute(f *OutputFormatter, arg string, err error) error {
	code := engine.CodeOf(err)
	if code == engine.ErrCodeInternal && engine.IsConvergenceError(err) {
		code = engine.ErrCodeDidNotConverge
	}
	exit := ExitFailure
	if code == engine.ErrCodeInvalidDate {
		exit = ExitCommandError
	}
	return f.Fail(exit, string(code), err.Error(), map[string]string{"date": arg})
}
