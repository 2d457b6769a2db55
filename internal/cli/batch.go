package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/unsei/internal/engine"
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/metrics"
	"github.com/roach88/unsei/internal/store"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	DBPath      string
	Workers     int
	MetricsPath string
}

// BatchOutput is the payload of the batch command.
type BatchOutput struct {
	BatchID  string `json:"batch_id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Workers  int    `json:"workers"`
	Computed int    `json:"computed"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"` // already stored
}

// String renders a one-line summary.
func (o BatchOutput) String() string {
	return fmt.Sprintf("✓ batch %s: %s .. %s, %d computed, %d stored, %d already present",
		o.BatchID, o.From, o.To, o.Computed, o.Inserted, o.Skipped)
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <from> <to>",
		Short: "Precompute a date range into the store",
		Long: `Compute every date in [from, to] concurrently and store the records.

Dates already in the store are left untouched, so an interrupted batch
can simply be run again.

Exit codes:
  0 - Every date computed and stored
  1 - A date failed to compute
  2 - Command error (invalid dates, store errors)

Examples:
  unsei batch 1950-01-01 2010-12-31 --db fortunes.db
  unsei batch 2000-01-01 2000-12-31 --workers 8 --metrics-out unsei.prom`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (default $UNSEI_DB or unsei.db)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent computations (default $UNSEI_WORKERS or 4)")
	cmd.Flags().StringVar(&opts.MetricsPath, "metrics-out", "", "write Prometheus metrics to this file (default $UNSEI_METRICS_FILE)")

	return cmd
}

func runBatch(opts *BatchOptions, fromArg, toArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	from, err := parseDateArg(fromArg)
	if err != nil {
		return failCompute(formatter, fromArg, err)
	}
	to, err := parseDateArg(toArg)
	if err != nil {
		return failCompute(formatter, toArg, err)
	}
	if to.Compare(from) < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument,
			fmt.Sprintf("range end %s is before start %s", to, from), nil)
	}

	workers := opts.workers(opts.Workers)
	dbPath := opts.dbPath(opts.DBPath)

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, runErr := precompute(ctx, opts, st, from, to, workers)

	if path := opts.metricsPath(); path != "" && out.reg != nil {
		if err := out.reg.WriteTextfile(path); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
		}
		formatter.VerboseLog("Wrote metrics to %s", path)
	}

	if runErr != nil {
		exit, code := ExitFailure, string(engine.CodeOf(runErr))
		if out.storeFailure {
			exit, code = ExitCommandError, ErrCodeStore
		}
		return formatter.Fail(exit, code, runErr.Error(), map[string]any{
			"batch_id": out.BatchID,
			"stored":   out.Inserted,
		})
	}

	return formatter.Success(out.BatchOutput)
}

func (o *BatchOptions) metricsPath() string {
	if o.MetricsPath != "" {
		return o.MetricsPath
	}
	return o.Config.MetricsPath
}

type batchRun struct {
	BatchOutput
	reg          *metrics.Registry
	storeFailure bool
}

// precompute runs one batch. The store is written only from the Run
// callback, which the engine calls from a single goroutine.
func precompute(ctx context.Context, opts *BatchOptions, st *store.Store, from, to ir.CalendarDate, workers int) (batchRun, error) {
	out := batchRun{
		BatchOutput: BatchOutput{From: from.String(), To: to.String(), Workers: workers},
		reg:         metrics.NewRegistry(),
	}

	seq, err := st.MaxSeq(ctx)
	if err != nil {
		out.storeFailure = true
		return out, err
	}
	clock := engine.NewClockAt(seq)

	out.BatchID, err = st.BeginBatch(ctx, from, to, workers, clock.Next())
	if err != nil {
		out.storeFailure = true
		return out, err
	}

	logger := opts.Logger.With().Str("batch_id", out.BatchID).Logger()
	logger.Info().Str("from", out.From).Str("to", out.To).Int("workers", workers).Msg("batch started")
	began := time.Now()

	b := &engine.Batch{Workers: workers, Observer: out.reg}
	err = b.Run(ctx, from, to, func(r ir.FortuneResult) error {
		out.Computed++
		inserted, err := st.WriteResult(ctx, r.Record(), out.BatchID, clock.Next())
		if err != nil {
			out.storeFailure = true
			return err
		}
		if inserted {
			out.Inserted++
		} else {
			out.Skipped++
		}
		if out.Computed%1000 == 0 {
			logger.Debug().Str("date", r.Date.String()).Int("count", out.Computed).Msg("batch progress")
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int("count", out.Computed).Msg("batch failed")
		return out, err
	}

	if err := st.FinishBatch(ctx, out.BatchID, out.Inserted); err != nil {
		out.storeFailure = true
		return out, err
	}

	logger.Info().
		Int("count", out.Computed).
		Int("inserted", out.Inserted).
		Dur("elapsed", time.Since(began)).
		Msg("batch finished")
	return out, nil
}
