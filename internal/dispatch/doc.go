// Package dispatch routes IR nodes to handler methods specialized for their
// exact variant.
//
// DISPATCH ROUTINES:
//
// Each Node carries immutable tags: an OpType for operations, a ValueType
// (and, for scalars, a DataType) for values. A dispatch routine reads the
// tags, narrows the node to its concrete type and calls the one matching
// method:
//
//	DispatchValue / DispatchOperation / DispatchStatement           -> Handler.Handle*
//	ConstDispatchValue / ConstDispatchOperation / ConstDispatchStatement -> ConstHandler.Visit*
//	MutatorDispatchValue / MutatorDispatchOperation / MutatorDispatchStatement -> Mutator.Mutate*
//
// Tags that match no variant are fatal. The routines have no other side
// effects; recursion into children is the handler's business.
//
// HANDLER FAMILIES:
//
// Build a concrete pass by embedding one base and overriding the variant
// methods it cares about:
//
//	OptOutDispatch, OptOutConstDispatch  defaults do nothing (optional Unhandled hook)
//	OptInDispatch, OptInConstDispatch    defaults fail with UNHANDLED_VARIANT
//	OptOutMutator                        defaults return the node unchanged
//
// Implementing Handler or ConstHandler directly, with no embedded base, is
// the compile-time form of opt-in: the type does not compile until every
// variant method exists.
//
// Go methods promoted from an embedded base cannot call back into the
// embedding type, so re-entry goes through free functions that take the
// handler as an argument:
//
//	type countInts struct {
//	    dispatch.OptOutConstDispatch
//	    n int
//	}
//
//	func (c *countInts) VisitInt(*ir.Int) { c.n++ }
//
//	c := &countInts{}
//	dispatch.Visit(c, node)
//
// MUTATION RECORD:
//
// OptOutMutator owns a map from original values to replacements, scoped to
// one pass. MutateValue consults it before dispatching, and RegisterMutation
// refuses to overwrite an entry. Use a new mutator for every pass.
//
// FATAL ERRORS:
//
// Fatal conditions panic with a *FatalError; unrecovered, that aborts the
// process. Run converts the panic to an error for runners that report
// failures instead.
//
// Nothing in this package is safe for concurrent use within one traversal.
package dispatch
