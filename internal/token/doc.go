// Package token defines lexical token kinds for the C front-end.
// Invariants:
//   - Token.Lexeme is a subslice of the original file content (no copies).
//   - Token.Span matches Lexeme exactly (Start..End).
//   - Lexemes are never empty, EOF being the only exception.
//   - Quote characters never form a token of their own: a quote always
//     belongs to a CharConst or StringLit lexeme (or to an Invalid token).
//   - Base type names (char, int, long, ...) are keywords, not identifiers.
package token
