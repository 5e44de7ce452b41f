// Package irfile loads fusion and kernel descriptions from YAML or CUE
// files into an ir.Container.
//
// A document lists values in dependency order, then operations, then the
// fusion outputs. Values and operations refer to earlier values by name.
// A reference that parses as a literal (7, 2.5, true) creates a fresh
// constant instead.
//
//	name: add_mul
//	values:
//	  - {name: x, type: int}
//	  - {name: y, type: int}
//	  - {name: t, type: int}
//	  - {name: out, type: int}
//	ops:
//	  - {op: BinaryOp, kind: mul, out: [t], in: [y, "2"]}
//	  - {op: BinaryOp, kind: add, out: [out], in: [x, t]}
//	outputs: [out]
//
// CUE documents are unified with the embedded schema before decoding, so
// misspelled fields and bad enum values fail with a position.
package irfile
