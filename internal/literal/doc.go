// Package literal evaluates the lexemes of C constants: integer values,
// character constants and (possibly concatenated) string literals.
//
// The lexer only classifies literals; everything here runs on demand, when a
// parser needs the value to build an ast node. Errors are *Error values that
// carry a diag.Code and the byte offset inside the lexeme, so callers can turn
// them into diagnostics against the token span.
package literal
