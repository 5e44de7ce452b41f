package dispatch

import (
	"errors"
	"fmt"

	"github.com/roach88/nvfuse/internal/ir"
)

// FatalError is the payload of every panic raised by this package.
//
// Fatal errors are programming or build-consistency errors, never
// transient conditions:
//   - Unknown variant: a tag matched no case in a dispatch table
//   - Unhandled variant: an opt-in handler did not override a variant method
//   - Duplicate mutation: a value was registered twice in one mutator pass
//
// Left unrecovered, the panic terminates the process. A top-level pass runner
// may use Run to turn it into an ordinary error instead.
type FatalError struct {
	// Code identifies the error category.
	Code FatalCode

	// Message is the diagnostic, e.g. "Unknown valtype in dispatch!".
	Message string

	// Category is "value", "operation", or empty when the node had neither.
	Category string

	// Variant is the exact variant tag of the offending node, when known.
	Variant string

	// Node is the Container name of the offending node, or -1.
	Node int
}

// FatalCode categorizes fatal errors.
type FatalCode string

const (
	// ErrCodeUnknownVariant indicates a tag that no dispatch table knows.
	ErrCodeUnknownVariant FatalCode = "UNKNOWN_VARIANT"

	// ErrCodeUnhandledVariant indicates an opt-in handler missing an override.
	ErrCodeUnhandledVariant FatalCode = "UNHANDLED_VARIANT"

	// ErrCodeDuplicateMutation indicates a second RegisterMutation for one value.
	ErrCodeDuplicateMutation FatalCode = "DUPLICATE_MUTATION"
)

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("%s: %s (%s %s)", e.Code, e.Message, e.Category, e.Variant)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownVariant reports whether err is an unknown-variant fatal error.
func IsUnknownVariant(err error) bool {
	return hasCode(err, ErrCodeUnknownVariant)
}

// IsUnhandledVariant reports whether err is an unhandled-variant fatal error.
func IsUnhandledVariant(err error) bool {
	return hasCode(err, ErrCodeUnhandledVariant)
}

// IsDuplicateMutation reports whether err is a duplicate-mutation fatal error.
func IsDuplicateMutation(err error) bool {
	return hasCode(err, ErrCodeDuplicateMutation)
}

func hasCode(err error, code FatalCode) bool {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// Run calls fn and converts a *FatalError panic into a returned error.
// Any other panic propagates unchanged.
//
// Run is for pass runners that report fatal errors instead of aborting,
// such as the CLI. Code that calls the dispatch routines directly keeps
// abort semantics.
func Run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			err = fe
		}
	}()
	fn()
	return nil
}

type dispatchStage int

const (
	stageValue dispatchStage = iota
	stageOperation
	stageStatement
)

var stageMessages = map[dispatchStage]string{
	stageValue:     "Unknown valtype in dispatch!",
	stageOperation: "Unknown exprtype in dispatch!",
	stageStatement: "Unknown stmttype in dispatch!",
}

func newUnknownVariant(stage dispatchStage, n ir.Node) *FatalError {
	e := &FatalError{
		Code:    ErrCodeUnknownVariant,
		Message: stageMessages[stage],
		Node:    -1,
	}
	describe(e, n)
	switch v := n.(type) {
	case ir.Value:
		// Report the raw tags: the pair did not resolve to a variant.
		if v.ValueType() == ir.ValueTypeScalar {
			e.Variant = fmt.Sprintf("%s/%s", v.ValueType(), v.DataType())
		} else {
			e.Variant = v.ValueType().String()
		}
	}
	return e
}

func newUnhandledVariant(n ir.Node) *FatalError {
	e := &FatalError{Code: ErrCodeUnhandledVariant, Node: -1}
	describe(e, n)
	e.Message = fmt.Sprintf("Handle not overridden for %s.", e.Variant)
	return e
}

func newDuplicateMutation(v ir.Value) *FatalError {
	e := &FatalError{
		Code:    ErrCodeDuplicateMutation,
		Message: "The same value is incorrectly being mutated twice. One mutation per mutation pass is allowed.",
		Node:    -1,
	}
	describe(e, v)
	return e
}

// describe fills the category, variant and name of n into e.
func describe(e *FatalError, n ir.Node) {
	switch x := n.(type) {
	case ir.Value:
		e.Category = "value"
		e.Variant = ir.Variant(x)
		e.Node = x.Name()
	case ir.Operation:
		e.Category = "operation"
		e.Variant = x.OpType().String()
		e.Node = x.Name()
	}
}
