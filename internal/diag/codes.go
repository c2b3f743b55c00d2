package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006
	LexEmptyChar                Code = 1007
	LexEmptyString              Code = 1008
	LexBadIdent                 Code = 1009
	LexMultibyteChar            Code = 1010 // warning
	LexUnknownEscape            Code = 1011 // warning

	// Литералы (декодирование значений)
	LitInfo          Code = 1500
	LitIntOverflow   Code = 1501
	LitBadEscape     Code = 1502
	LitCharOverflow  Code = 1503
	LitMixedEncoding Code = 1504
	LitBadDigit      Code = 1505
	LitMalformed     Code = 1506

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проектная конфигурация
	ProjInfo          Code = 5000
	ProjConfigInvalid Code = 5001
	ProjConfigUnknown Code = 5002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var ( // todo расширить описания и использовать как notes
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed numeric constant",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedChar:         "Unterminated character constant",
		LexEmptyChar:                "Empty character constant",
		LexEmptyString:              "Empty string literal",
		LexBadIdent:                 "Malformed identifier",
		LexMultibyteChar:            "Multi-character character constant",
		LexUnknownEscape:            "Unknown escape sequence",

		LitInfo:          "Literal information",
		LitIntOverflow:   "Integer constant does not fit in 64 bits",
		LitBadEscape:     "Invalid escape sequence",
		LitCharOverflow:  "Character value out of range for its encoding",
		LitMixedEncoding: "Concatenation of string literals with different encodings",
		LitBadDigit:      "Invalid digit in integer constant",
		LitMalformed:     "Malformed literal",

		IOInfo:          "I/O information",
		IOLoadFileError: "Could not load file",
		IOCacheError:    "Token cache failure",

		ProjInfo:          "Project information",
		ProjConfigInvalid: "Invalid cci.toml",
		ProjConfigUnknown: "Unknown key in cci.toml",

		ObsInfo:    "Observability information",
		ObsTimings: "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 1500:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1500 && ic < 2000:
		return fmt.Sprintf("LIT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps an ID such as "LEX1001" back to its Code.
func ParseCode(id string) (Code, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return 0, false
}
