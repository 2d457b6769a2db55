package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath string
	Kin    int
}

// ShowOutput is the payload of the show command.
type ShowOutput struct {
	Records []ir.Record `json:"records"`
}

// String renders one line per stored record.
func (o ShowOutput) String() string {
	lines := make([]string, len(o.Records))
	for i, r := range o.Records {
		lines[i] = fmt.Sprintf("%s  KIN%d %s %s  %s/%s  %s  %s  %s",
			r.BirthDate, r.Kin, r.Glyph, r.ToneName, r.Stem, r.Star, r.Sign, r.Sukuyo, r.LifePath)
	}
	return strings.Join(lines, "\n")
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show stored results",
		Long: `Read precomputed results from the store, either for one birth date or
for every stored date with a given kin.

Exit codes:
  0 - Found
  1 - Nothing stored for the query
  2 - Command error (database not found, invalid arguments)

Examples:
  unsei show 1979-11-22 --db fortunes.db
  unsei show --kin 93 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (default $UNSEI_DB or unsei.db)")
	cmd.Flags().IntVar(&opts.Kin, "kin", 0, "list every stored date with this kin (1-260)")

	return cmd
}

func runShow(opts *ShowOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if (len(args) == 1) == (opts.Kin != 0) {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, "give either a date or --kin", nil)
	}
	if opts.Kin < 0 || opts.Kin > 260 {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, fmt.Sprintf("kin %d out of range 1-260", opts.Kin), nil)
	}

	// Opening would create an empty database.
	dbPath := opts.dbPath(opts.DBPath)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	var records []ir.Record
	if len(args) == 1 {
		date, err := parseDateArg(args[0])
		if err != nil {
			return failCompute(formatter, args[0], err)
		}
		rec, ok, err := st.ReadResult(ctx, date)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		if ok {
			records = append(records, rec)
		}
	} else {
		records, err = st.FindByKin(ctx, opts.Kin)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}

	if len(records) == 0 {
		return formatter.Fail(ExitFailure, ErrCodeNotFound, "no stored result", nil)
	}

	formatter.VerboseLog("Read %d record(s) from %s", len(records), dbPath)
	return formatter.Success(ShowOutput{Records: records})
}
