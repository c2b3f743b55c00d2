package lexer

import (
	"cci/internal/token"
)

// Жадность: token.Symbols упорядочен от длинных к коротким,
// первый совпавший префикс и есть максимальный (">>=" раньше ">>" и ">").
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	sym, ok := token.MatchSymbol(lx.cursor.Rest())
	if !ok {
		// сюда попадаем только с байтом из isSpecial или '.', а они все в таблице
		return lx.scanUnknown()
	}
	lx.cursor.Advance(uint32(len(sym.Text)))
	return lx.emit(sym.Kind, start)
}
