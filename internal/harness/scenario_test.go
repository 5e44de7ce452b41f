package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content next to a copy of the addmul fixture and
// returns the scenario path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	fixture, err := os.ReadFile(filepath.Join("testdata", "fixtures", "addmul.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "addmul.yaml"), fixture, 0644))

	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
fixture: addmul.yaml
pass: stats
assertions:
  - type: output_contains
    contains: "total"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "addmul.yaml"), scenario.Fixture)
	assert.Equal(t, PassStats, scenario.Pass)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, "total", scenario.Assertions[0].Contains)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
fixture: addmul.yaml
pass: trace
assertion:
  - type: fatal
    code: UNKNOWN_VARIANT
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "fixture: addmul.yaml\npass: trace\nassertions: [{type: fatal, code: X}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing fixture",
			content: "name: s\npass: trace\nassertions: [{type: fatal, code: X}]\n",
			wantErr: "fixture is required",
		},
		{
			name:    "fixture not found",
			content: "name: s\nfixture: nope.yaml\npass: trace\nassertions: [{type: fatal, code: X}]\n",
			wantErr: "fixture file not found",
		},
		{
			name:    "unknown pass",
			content: "name: s\nfixture: addmul.yaml\npass: lower\nassertions: [{type: fatal, code: X}]\n",
			wantErr: `unknown pass "lower"`,
		},
		{
			name:    "no assertions",
			content: "name: s\nfixture: addmul.yaml\npass: trace\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "assertion without type",
			content: "name: s\nfixture: addmul.yaml\npass: trace\nassertions: [{count: 1}]\n",
			wantErr: "assertions[0]: type is required",
		},
		{
			name:    "unknown assertion type",
			content: "name: s\nfixture: addmul.yaml\npass: trace\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "variant_count bad category",
			content: "name: s\nfixture: addmul.yaml\npass: trace\nassertions: [{type: variant_count, category: expr, variant: Int}]\n",
			wantErr: "category must be value or operation",
		},
		{
			name:    "variant_count without variant",
			content: "name: s\nfixture: addmul.yaml\npass: trace\nassertions: [{type: variant_count, category: value}]\n",
			wantErr: "variant is required",
		},
		{
			name:    "trace_order without variants",
			content: "name: s\nfixture: addmul.yaml\npass: trace\nassertions: [{type: trace_order}]\n",
			wantErr: "variants list is required",
		},
		{
			name:    "output_contains without text",
			content: "name: s\nfixture: addmul.yaml\npass: print\nassertions: [{type: output_contains}]\n",
			wantErr: "contains is required",
		},
		{
			name:    "fatal without code",
			content: "name: s\nfixture: addmul.yaml\npass: check\nassertions: [{type: fatal}]\n",
			wantErr: "code is required",
		},
		{
			name:    "negative issue count",
			content: "name: s\nfixture: addmul.yaml\npass: check\nassertions: [{type: issue_count, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
