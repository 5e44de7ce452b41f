package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/harness"
	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/irfile"
)

// ErrCodeGeneric is reported for command errors without a more specific code.
const ErrCodeGeneric = "E001"

type passCommand struct {
	pass  string
	short string
	long  string
}

var passCommands = []passCommand{
	{
		pass:  harness.PassPrint,
		short: "Print the IR listing of a fixture",
		long:  "Print every top-level statement of the fixture in definition order.",
	},
	{
		pass:  harness.PassStats,
		short: "Count nodes per variant",
		long:  "Count the reachable values and operations of the fixture per exact variant.",
	},
	{
		pass:  harness.PassCheck,
		short: "Check a fusion for consistency",
		long: `Check the fusion with an opt-in visitor.

Reports operand type mismatches and values with more than one definition.
Kernel-only nodes are not legal in a fusion: the checker aborts with
UNHANDLED_VARIANT when it meets one. Any issue exits with status 1.`,
	},
	{
		pass:  harness.PassFold,
		short: "Fold constant scalar arithmetic",
		long:  "Fold constant scalar operations with the mutator and print the rewritten listing.",
	},
}

// PassData is the JSON payload of a pass command.
type PassData struct {
	Pass    string `json:"pass"`
	Fixture string `json:"fixture"`
	Text    string `json:"text"`

	Stats   any `json:"stats,omitempty"`
	Issues  any `json:"issues,omitempty"`
	Folded  int `json:"folded,omitempty"`
	Rebuilt int `json:"rebuilt,omitempty"`
}

// NewPassCommand creates the command running one pass over a fixture.
func NewPassCommand(rootOpts *RootOptions, pc passCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   pc.pass + " <fixture>",
		Short: pc.short,
		Long: pc.long + `

Examples:
  nvfuse ` + pc.pass + ` ./fixtures/addmul.yaml
  nvfuse ` + pc.pass + ` ./fixtures/addmul.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(rootOpts, pc.pass, args[0], cmd)
		},
	}
	return cmd
}

func runPass(opts *RootOptions, pass, fixture string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, err := loadFixture(formatter, fixture)
	if err != nil {
		return err
	}

	out, err := harness.RunPass(pass, c)
	if err != nil {
		return outputPassError(formatter, pass, err)
	}

	data := PassData{Pass: pass, Fixture: fixture, Text: out.Text}
	if out.Stats != nil {
		data.Stats = out.Stats
	}
	if len(out.Issues) > 0 {
		data.Issues = out.Issues
	}
	if out.Fold != nil {
		data.Folded = out.Fold.Folded
		data.Rebuilt = out.Fold.Rebuilt
	}

	var failure *ExitError
	if len(out.Issues) > 0 {
		failure = NewExitError(ExitFailure, fmt.Sprintf("%d issue(s) found", len(out.Issues)))
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: data}
		if failure != nil {
			response.Status = "error"
			response.Error = &CLIError{Code: "E_CHECK_FAILED", Message: failure.Message}
		}
		if err := encodeJSON(formatter.Writer, response); err != nil {
			return err
		}
	} else {
		fmt.Fprint(formatter.Writer, out.Text)
	}

	if failure != nil {
		return failure
	}
	return nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadFixture loads and builds a fixture, reporting a load error through
// formatter as a command error.
func loadFixture(formatter *OutputFormatter, path string) (*ir.Container, error) {
	_, c, err := irfile.Load(path)
	if err != nil {
		var loadErr *irfile.LoadError
		if errors.As(err, &loadErr) {
			var details any
			if loadErr.Path != "" {
				details = map[string]string{"path": loadErr.Path}
			}
			_ = formatter.Error(loadErr.Code, loadErr.Message, details)
			return nil, WrapExitError(ExitCommandError, "failed to load fixture", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load fixture", err)
	}

	formatter.VerboseLog("Loaded %s: %d value(s), %d operation(s)", path, len(c.Values()), len(c.Operations()))
	return c, nil
}

// outputPassError reports a pass that did not complete. A fatal dispatch
// error fails the pass; anything else is a command error.
func outputPassError(formatter *OutputFormatter, pass string, err error) error {
	var fe *dispatch.FatalError
	if errors.As(err, &fe) {
		_ = formatter.Error(string(fe.Code), fe.Message, map[string]any{
			"category": fe.Category,
			"variant":  fe.Variant,
			"node":     fe.Node,
		})
		return WrapExitError(ExitFailure, pass+" aborted", fe)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, pass+" failed", err)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
