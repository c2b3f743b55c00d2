package token

import "slices"

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"do":       KwDo,
	"typedef":  KwTypedef,
	"break":    KwBreak,
	"case":     KwCase,
	"continue": KwContinue,
	"default":  KwDefault,
	"enum":     KwEnum,
	"extern":   KwExtern,
	"goto":     KwGoto,
	"inline":   KwInline,
	"register": KwRegister,
	"restrict": KwRestrict,
	"return":   KwReturn,
	"sizeof":   KwSizeof,
	"static":   KwStatic,
	"auto":     KwAuto,
	"struct":   KwStruct,
	"switch":   KwSwitch,
	"union":    KwUnion,

	"char":     KwChar,
	"short":    KwShort,
	"int":      KwInt,
	"long":     KwLong,
	"float":    KwFloat,
	"double":   KwDouble,
	"void":     KwVoid,
	"signed":   KwSigned,
	"unsigned": KwUnsigned,
	"volatile": KwVolatile,
	"const":    KwConst,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Совпадение только полное и регистрозависимое: "intx" и "Int" не ключевые слова.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupKeywordBytes is LookupKeyword for a borrowed lexeme; it does not allocate.
func LookupKeywordBytes(lexeme []byte) (Kind, bool) {
	k, ok := keywords[string(lexeme)]
	return k, ok
}

// Keywords returns every keyword spelling in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	slices.Sort(out)
	return out
}
