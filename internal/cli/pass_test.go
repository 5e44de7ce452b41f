package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/dispatch"
)

const addMulListing = "inputs: i0, i1, i2\ni3 = i1 * i2\ni4 = i0 + i3\noutputs: i4\n"

func TestPassCommands_Text(t *testing.T) {
	tests := []struct {
		pass    string
		fixture string
		want    string
	}{
		{"print", "addmul.yaml", addMulListing},
		{"stats", "addmul.yaml", "operation BinaryOp 2\nvalue Int 3\ntotal 5\n"},
		{"check", "addmul.yaml", "no issues\n"},
		{"fold", "addmul.yaml", "folded 0, rebuilt 0\n" + addMulListing},
	}

	for _, tt := range tests {
		t.Run(tt.pass, func(t *testing.T) {
			out, err := execute(t, tt.pass, "testdata/fixtures/"+tt.fixture)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFoldCommand_FoldsConstants(t *testing.T) {
	out, err := execute(t, "fold", "testdata/fixtures/fold.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "folded 1, rebuilt 1")
	assert.Contains(t, out, "+ 6")
}

func TestPassCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "stats", "testdata/fixtures/addmul.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Pass    string `json:"pass"`
			Fixture string `json:"fixture"`
			Text    string `json:"text"`
			Stats   struct {
				Values     map[string]int `json:"values"`
				Operations map[string]int `json:"operations"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "stats", resp.Data.Pass)
	assert.Equal(t, "testdata/fixtures/addmul.yaml", resp.Data.Fixture)
	assert.Equal(t, map[string]int{"Int": 3}, resp.Data.Stats.Values)
	assert.Equal(t, map[string]int{"BinaryOp": 2}, resp.Data.Stats.Operations)
}

func TestCheckCommand_IssuesFail(t *testing.T) {
	out, err := execute(t, "check", "testdata/fixtures/mixed.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 issue(s) found")
	assert.Contains(t, out, "operand types differ: Int and Double")
}

func TestCheckCommand_IssuesJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "check", "testdata/fixtures/mixed.yaml")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_CHECK_FAILED", resp.Error.Code)
}

func TestCheckCommand_KernelIsFatal(t *testing.T) {
	out, err := execute(t, "check", "testdata/fixtures/kernel.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var fe *dispatch.FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, dispatch.ErrCodeUnhandledVariant, fe.Code)
	assert.Equal(t, "Predicate", fe.Variant)
	assert.Contains(t, out, "Error [UNHANDLED_VARIANT]: Handle not overridden for Predicate.")
}

func TestPrintCommand_Kernel(t *testing.T) {
	out, err := execute(t, "print", "testdata/fixtures/kernel.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "NVFUSER_DEFINE_MAGIC_ZERO")
	assert.Contains(t, out, "SYNC(war_hazard = true)")
}

func TestPassCommand_MissingFixture(t *testing.T) {
	out, err := execute(t, "print", "testdata/fixtures/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestPassCommand_MissingFixtureJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "stats", "testdata/fixtures/nope.yaml")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
}

func TestPassCommand_RequiresFixture(t *testing.T) {
	_, err := execute(t, "print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
