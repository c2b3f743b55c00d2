package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий байт как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(lx.cursor.Rest())
	return r, sz
}

// bumpRune читает текущий байт как руну и перемещает курсор на размер руны.
// Битый UTF-8 съедается по одному байту.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Advance(usz)
}

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
func isOct(b byte) bool { return b >= '0' && b <= '7' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isQuote(b byte) bool { return b == '\'' || b == '"' }

// isSpecial: байты, с которых начинаются операторы и пунктуация.
// '.' сюда не входит: он может быть частью числа.
func isSpecial(b byte) bool {
	switch b {
	case '=', '+', '-', '*', '/', '%', '>', '<', '!', '&', '|', '~', '^',
		'(', ')', '[', ']', '{', '}', ',', ':', ';', '?':
		return true
	}
	return false
}

// isWordEnd заканчивает "слово" (идентификатор или мусорный прогон).
func isWordEnd(b byte) bool {
	return isSpace(b) || isSpecial(b) || isQuote(b) || b == '.'
}

// константы: цифры, буквы (hex, суффикс f), '_' и '.'
func isNumberRunByte(b byte) bool {
	return isIdentContinueByte(b) || b == '.'
}

// Проверка для кейса ".5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}
