package ast

import (
	"sync"

	"cci/internal/source"
	"cci/internal/types"
)

// SyncExprs serialises allocation for callers that build one translation
// unit from several goroutines. Reads go through Do.
type SyncExprs struct {
	mu    sync.Mutex
	exprs *Exprs
}

// NewSyncExprs wraps a fresh store.
func NewSyncExprs(q types.Query, capHint uint) *SyncExprs {
	return &SyncExprs{exprs: NewExprs(q, capHint)}
}

// Do runs fn with exclusive access to the underlying store.
func (s *SyncExprs) Do(fn func(e *Exprs)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.exprs)
}

func (s *SyncExprs) NewIntegerLiteral(value uint64, ty types.QualType, span source.Span) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewIntegerLiteral(value, ty, span)
}

func (s *SyncExprs) NewCharacterConstant(value uint32, kind CharKind, ty types.QualType, span source.Span) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewCharacterConstant(value, kind, ty, span)
}

func (s *SyncExprs) NewStringLiteral(ty types.QualType, content []byte, kind StringKind, charWidth uint8, locs []source.Loc, rquote source.Loc) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewStringLiteral(ty, content, kind, charWidth, locs, rquote)
}

func (s *SyncExprs) NewParen(inner ExprID, lparen, rparen source.Loc) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewParen(inner, lparen, rparen)
}

func (s *SyncExprs) NewArraySubscript(base, index ExprID, vk ValueKind, ty types.QualType, lbracket, rbracket source.Loc) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewArraySubscript(base, index, vk, ty, lbracket, rbracket)
}

func (s *SyncExprs) NewImplicitCast(vk ValueKind, ty types.QualType, kind CastKind, operand ExprID) ExprID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.NewImplicitCast(vk, ty, kind, operand)
}

// Len returns the number of allocated nodes.
func (s *SyncExprs) Len() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exprs.Len()
}

// Release frees the store.
func (s *SyncExprs) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exprs.Release()
}
