// Package ast holds C expression nodes in arena storage.
//
// Nodes are addressed by ExprID handles into one Exprs store per translation
// unit. A node is built once by its factory, never mutated, and freed only when
// the whole store is released. Payload structs contain no Go pointers, slices
// or strings; variable-size data (string bytes, fragment locations) lives in
// store-owned pools referenced by range.
//
// Ownership is a tree: every factory adopts its children, and a child handle
// can be adopted only once. Factories validate everything before allocating
// and panic with an error wrapping ErrContract when a precondition fails.
package ast
