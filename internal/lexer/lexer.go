package lexer

import (
	"cci/internal/source"
	"cci/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Tokenize сканирует файл целиком и возвращает токены в порядке исходника, без EOF.
// Ошибки уходят в opts.Reporter; на их месте в потоке стоят Invalid-токены.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	// грубая оценка: ~1 токен на 4 байта
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look - вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) пробелы и комментарии; незакрытый /* */ сам становится Invalid-токеном
	if tok, ok := lx.skipTrivia(); ok {
		return tok
	}

	// 3) EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	switch {
	case isQuote(ch):
		return lx.scanQuoted(0)

	case lx.quotePrefixLen() > 0:
		// L'x', u"..", U'x', u8"..": префикс кодировки приклеен к литералу
		return lx.scanQuoted(lx.quotePrefixLen())

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		// .5 → FloatConst
		return lx.scanNumber()

	case ch == '.' || isSpecial(ch):
		return lx.scanOperatorOrPunct()

	default:
		return lx.scanUnknown()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:   k,
		Span:   sp,
		Lexeme: lx.file.Bytes(sp),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
