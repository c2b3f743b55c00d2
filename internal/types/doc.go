// Package types interns the C types attached to expression nodes.
//
// A TypeID names an unqualified structural type (int, char *, int [4]); qualifiers
// live next to it in QualType so "const int" and "int" share one descriptor.
// Pointee and element qualifiers are part of the descriptor: char * and
// const char * are different TypeIDs.
package types
