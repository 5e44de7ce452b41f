package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/nvfuse/internal/harness"
	"github.com/roach88/nvfuse/internal/passes"
	"github.com/roach88/nvfuse/internal/store"
)

// TraceOptions holds flags for the trace commands.
type TraceOptions struct {
	*RootOptions
	Database string
	Fixture  string // list filter
	Digest   string // list filter
}

// TraceResult is the output of a recorded or stored trace.
type TraceResult struct {
	RunID   string         `json:"run_id,omitempty"`
	Seq     int64          `json:"seq,omitempty"`
	Fixture string         `json:"fixture"`
	Digest  string         `json:"digest"`
	Events  []passes.Event `json:"events"`
}

// NewTraceCommand creates the trace command and its show, list and verify
// subcommands.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <fixture>",
		Short: "Record the dispatch visit order of a fixture",
		Long: `Walk the fixture with the read-only dispatcher and print every visit.

Each line is one visit: sequence number, category, exact variant and the
node's name in its container. The digest identifies the visit order; equal
containers produce equal digests.

With --db the trace is stored as a run that the show, list and verify
subcommands can read back.

Examples:
  nvfuse trace ./fixtures/addmul.yaml
  nvfuse trace ./fixtures/addmul.yaml --db ./runs.db
  nvfuse trace show --db ./runs.db 0192f0c4-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd, store.UUIDv7Generator{})
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database to record the run in")

	cmd.AddCommand(newTraceShowCommand(opts))
	cmd.AddCommand(newTraceListCommand(opts))
	cmd.AddCommand(newTraceVerifyCommand(opts))

	return cmd
}

func newTraceShowCommand(opts *TraceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show a stored run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func newTraceListCommand(opts *TraceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceList(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "only runs recorded for this fixture path")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "only runs whose trace has this digest")
	return cmd
}

func newTraceVerifyCommand(opts *TraceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "verify <run-id>",
		Short:         "Check a stored run against its digest",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceVerify(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func runTrace(opts *TraceOptions, fixture string, cmd *cobra.Command, gen store.RunIDGenerator) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := loadFixture(formatter, fixture)
	if err != nil {
		return err
	}

	out, err := harness.RunPass(harness.PassTrace, c)
	if err != nil {
		return outputPassError(formatter, harness.PassTrace, err)
	}

	run, err := store.NewRun(gen, fixture, harness.PassTrace, out.Trace)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash trace", err)
	}
	result := TraceResult{Fixture: fixture, Digest: run.Digest, Events: run.Events}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		run, err = st.WriteRun(ctx, run)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write run", err)
		}
		result.RunID = run.ID
		result.Seq = run.Seq
		formatter.VerboseLog("Recorded run %s (seq %d) in %s", run.ID, run.Seq, opts.Database)
	}

	if opts.Format == "json" {
		return encodeJSON(formatter.Writer, CLIResponse{Status: "ok", Data: result, RunID: result.RunID})
	}
	outputTraceText(formatter.Writer, result)
	return nil
}

func runTraceShow(opts *TraceOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error("E_RUN_NOT_FOUND", fmt.Sprintf("no run with id %s", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	result := TraceResult{
		RunID:   run.ID,
		Seq:     run.Seq,
		Fixture: run.Fixture,
		Digest:  run.Digest,
		Events:  run.Events,
	}
	if opts.Format == "json" {
		return encodeJSON(formatter.Writer, CLIResponse{Status: "ok", Data: result, RunID: run.ID})
	}
	outputTraceText(formatter.Writer, result)
	return nil
}

func runTraceList(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var runs []store.Run
	switch {
	case opts.Digest != "":
		runs, err = st.FindRunsByDigest(ctx, opts.Digest)
	case opts.Fixture != "":
		runs, err = st.FindRuns(ctx, opts.Fixture, harness.PassTrace)
	default:
		runs, err = st.ListRuns(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return encodeJSON(formatter.Writer, CLIResponse{Status: "ok", Data: runs})
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%d  %s  %s  %s  %s\n", run.Seq, run.ID, run.Pass, truncateDigest(run.Digest), run.Fixture)
	}
	return nil
}

func runTraceVerify(opts *TraceOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)
	color := useColor(opts.RootOptions, formatter.Writer)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	err = st.VerifyRun(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error("E_RUN_NOT_FOUND", fmt.Sprintf("no run with id %s", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		// A mismatch means the stored events were altered after recording.
		_ = formatter.Error("E_DIGEST_MISMATCH", err.Error(), nil)
		return WrapExitError(ExitFailure, "run failed verification", err)
	}

	if opts.Format == "json" {
		return encodeJSON(formatter.Writer, CLIResponse{Status: "ok", Data: map[string]any{"verified": true}, RunID: id})
	}
	fmt.Fprintf(formatter.Writer, "%s run %s matches its digest\n", mark(true, color), id)
	return nil
}

// outputTraceText writes the run header and one line per visit.
func outputTraceText(w io.Writer, result TraceResult) {
	if result.RunID != "" {
		fmt.Fprintf(w, "Run: %s (seq %d)\n", result.RunID, result.Seq)
	}
	fmt.Fprintf(w, "Fixture: %s\n", result.Fixture)
	fmt.Fprintf(w, "Digest: %s\n", result.Digest)
	fmt.Fprintln(w)

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "  (no events)")
		return
	}
	for _, e := range result.Events {
		fmt.Fprintf(w, "  [%d] %-9s %-15s %d\n", e.Seq, e.Category, e.Variant, e.Node)
	}
}

// truncateDigest shortens a digest for display.
func truncateDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
