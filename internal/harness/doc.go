// Package harness runs pass scenarios against IR fixtures.
//
// A scenario names a fixture, a pass to run over it and the assertions the
// outcome must satisfy. Scenarios double as regression tests for the
// dispatcher: the trace of every run is recorded and can be compared
// against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: addmul_trace
//	description: "Pre-order walk of add(x, mul(y, z))"
//	fixture: ../irfile/testdata/addmul.yaml
//	pass: trace
//	assertions:
//	  - type: output_contains
//	    contains: "BinaryOp"
//	  - type: variant_count
//	    category: value
//	    variant: Int
//	    count: 3
//	  - type: trace_order
//	    variants: [BinaryOp, Int]
//
// # Passes
//
//   - print: render the fusion or kernel
//   - stats: count visited nodes by variant
//   - check: validate a fusion with the opt-in checker
//   - fold: constant-fold in place, then render
//   - trace: list the dispatcher's visits
//
// # Assertion Types
//
//   - output_contains: The rendered pass output contains a substring
//   - variant_count: A variant is visited exactly N times in the trace
//   - trace_order: Variants first appear in the trace in the given order
//   - issue_count: The check pass reports exactly N issues
//   - fatal: The pass aborts with the given fatal code
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/addmul.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
