package token

// Symbol pairs an operator or punctuation spelling with its kind.
type Symbol struct {
	Text string
	Kind Kind
}

// Symbols lists every operator and punctuation spelling, longest first.
// The lexer takes the first entry that is a prefix of the input, which
// yields maximal munch: ">>=" wins over ">>" and ">".
var Symbols = []Symbol{
	{"...", Ellipsis},
	{"<<=", ShlAssign},
	{">>=", ShrAssign},

	{"++", PlusPlus},
	{"--", MinusMinus},
	{"->", Arrow},
	{"+=", PlusAssign},
	{"-=", MinusAssign},
	{"*=", StarAssign},
	{"/=", SlashAssign},
	{"%=", PercentAssign},
	{"<=", LtEq},
	{">=", GtEq},
	{"==", EqEq},
	{"!=", BangEq},
	{"&&", AndAnd},
	{"||", OrOr},
	{"&=", AmpAssign},
	{"|=", PipeAssign},
	{"^=", CaretAssign},
	{"<<", Shl},
	{">>", Shr},

	{"=", Assign},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"<", Lt},
	{">", Gt},
	{"!", Bang},
	{"~", Tilde},
	{"&", Amp},
	{"|", Pipe},
	{"^", Caret},
	{"(", LParen},
	{")", RParen},
	{"[", LBracket},
	{"]", RBracket},
	{"{", LBrace},
	{"}", RBrace},
	{".", Dot},
	{",", Comma},
	{":", Colon},
	{";", Semicolon},
	{"?", Question},
}

// MaxSymbolLen is the length of the longest spelling in Symbols.
const MaxSymbolLen = 3

var spellings = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords)+len(Symbols))
	for text, k := range keywords {
		m[k] = text
	}
	for _, s := range Symbols {
		m[s.Kind] = s.Text
	}
	return m
}()

// MatchSymbol returns the longest symbol that prefixes src.
func MatchSymbol(src []byte) (Symbol, bool) {
	for _, s := range Symbols {
		if len(src) >= len(s.Text) && string(src[:len(s.Text)]) == s.Text {
			return s, true
		}
	}
	return Symbol{}, false
}

// Spelling returns the fixed source text of a keyword or symbol kind.
func Spelling(k Kind) (string, bool) {
	s, ok := spellings[k]
	return s, ok
}
