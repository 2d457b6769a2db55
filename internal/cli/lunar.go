package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/unsei/internal/astro"
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/lunisolar"
)

// LunarOutput is the payload of the lunar command.
type LunarOutput struct {
	Date        string `json:"date"`
	LunarYear   int    `json:"lunar_year"`
	LunarMonth  int    `json:"lunar_month"`
	LunarDay    int    `json:"lunar_day"`
	LeapMonth   bool   `json:"leap_month"`
	MonthStart  string `json:"month_start"`
	MonthEnd    string `json:"month_end"` // last civil day of the month
	MonthLength int    `json:"month_length"`
	Zhongqi     int    `json:"zhongqi"` // degrees, or -1 for a leap month
}

// String renders the lunar date and its month span.
func (o LunarOutput) String() string {
	var b strings.Builder
	ld := ir.LunarDate{LunarYear: o.LunarYear, LunarMonth: o.LunarMonth, LunarDay: o.LunarDay, IsLeapMonth: o.LeapMonth}
	fmt.Fprintf(&b, "%s → %s\n", o.Date, ld)
	fmt.Fprintf(&b, "month: %s .. %s (%d days)\n", o.MonthStart, o.MonthEnd, o.MonthLength)
	if o.Zhongqi == lunisolar.NoZhongqi {
		b.WriteString("zhongqi: none (leap month)")
	} else {
		fmt.Fprintf(&b, "zhongqi: %d°", o.Zhongqi)
	}
	return b.String()
}

// NewLunarCommand creates the lunar command.
func NewLunarCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lunar <date>",
		Short: "Convert a date to the lunisolar calendar",
		Long: `Convert a Gregorian date to the lunisolar calendar and show the
synodic month that contains it.

Examples:
  unsei lunar 2023-03-22
  unsei lunar 2024-02-10 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLunar(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runLunar(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	date, err := parseDateArg(arg)
	if err != nil {
		return failCompute(formatter, arg, err)
	}

	ld, month, err := lunisolar.Convert(date.Year, date.Month, date.Day)
	if err != nil {
		return failCompute(formatter, arg, err)
	}

	return formatter.Success(LunarOutput{
		Date:        date.String(),
		LunarYear:   ld.LunarYear,
		LunarMonth:  ld.LunarMonth,
		LunarDay:    ld.LunarDay,
		LeapMonth:   ld.IsLeapMonth,
		MonthStart:  dayString(month.StartDay),
		MonthEnd:    dayString(month.EndDay - 1),
		MonthLength: month.Length(),
		Zhongqi:     month.Zhongqi,
	})
}

// dayString formats a day number as YYYY-MM-DD.
func dayString(day int) string {
	y, m, d := astro.CalendarFromJD(float64(day))
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
