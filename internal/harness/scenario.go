package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines one pass run over a fixture and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the path to a YAML or CUE fixture.
	// Relative paths are resolved against the scenario file's directory.
	Fixture string `yaml:"fixture"`

	// Pass is one of Passes.
	Pass string `yaml:"pass"`

	// Assertions validate the pass outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates output, trace or issues.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Check the rendered output contains Contains
	// - "variant_count": Check Category/Variant is visited exactly Count times
	// - "trace_order": Check Variants first appear in order
	// - "issue_count": Check the check pass reports exactly Count issues
	// - "fatal": Check the pass aborts with fatal code Code
	Type string `yaml:"type"`

	// Contains is the expected substring (used by output_contains).
	Contains string `yaml:"contains,omitempty"`

	// Category is "value" or "operation" (used by variant_count).
	Category string `yaml:"category,omitempty"`

	// Variant is the exact variant name (used by variant_count).
	Variant string `yaml:"variant,omitempty"`

	// Count is the expected number (used by variant_count and issue_count).
	Count int `yaml:"count,omitempty"`

	// Variants is the expected order (used by trace_order).
	Variants []string `yaml:"variants,omitempty"`

	// Code is the expected fatal code (used by fatal).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertVariantCount   = "variant_count"
	AssertTraceOrder     = "trace_order"
	AssertIssueCount     = "issue_count"
	AssertFatal          = "fatal"
)

// Pass names.
const (
	PassPrint = "print"
	PassStats = "stats"
	PassCheck = "check"
	PassFold  = "fold"
	PassTrace = "trace"
)

// Passes lists every pass a scenario may run.
var Passes = []string{PassPrint, PassStats, PassCheck, PassFold, PassTrace}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}

	if _, err := os.Stat(s.Fixture); os.IsNotExist(err) {
		return fmt.Errorf("fixture file not found: %s", s.Fixture)
	}

	if !slices.Contains(Passes, s.Pass) {
		return fmt.Errorf("unknown pass %q (want one of %v)", s.Pass, Passes)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains:
		if a.Contains == "" {
			return fmt.Errorf("assertions[%d]: contains is required for output_contains", index)
		}
	case AssertVariantCount:
		if a.Category != "value" && a.Category != "operation" {
			return fmt.Errorf("assertions[%d]: category must be value or operation for variant_count", index)
		}
		if a.Variant == "" {
			return fmt.Errorf("assertions[%d]: variant is required for variant_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for variant_count", index)
		}
	case AssertTraceOrder:
		if len(a.Variants) == 0 {
			return fmt.Errorf("assertions[%d]: variants list is required for trace_order", index)
		}
	case AssertIssueCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for issue_count", index)
		}
	case AssertFatal:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for fatal", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
