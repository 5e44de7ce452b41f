// Package ir defines the closed node set of the fusion IR.
//
// Every node is exactly one of Value or Operation. Values carry a ValueType
// tag and, for scalars, a DataType tag; operations carry an OpType tag.
// Dispatch routes on these tags alone, never on reflection.
//
// This package contains type definitions and builders only. Passes live in
// internal/passes and routing lives in internal/dispatch; ir imports nothing
// internal.
//
// Key design constraints:
//   - Node, Value and Operation are sealed: only types in this package implement them
//   - Tags are fixed by the constructor and never change
//   - Each output records the Operation that defines it
//   - A Container names nodes per category in registration order
package ir
