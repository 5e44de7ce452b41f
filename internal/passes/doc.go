// Package passes holds the concrete handlers built on internal/dispatch.
//
// Every pass follows one of the dispatch families:
//   - Printer implements ConstHandler in full (compile-time opt-in)
//   - Stats and Trace use OptOutConstDispatch with an Unhandled hook
//   - CheckFusion embeds OptInConstDispatch so kernel IR fails fatally
//   - Parallelize embeds OptOutDispatch and edits IterDomains in place
//   - ReplaceValues and Fold embed OptOutMutator and rebuild consumers
//
// Traversal is the caller's business: Walk and TopoSort recurse explicitly,
// and handlers re-enter dispatch through the package-level entry points.
package passes
