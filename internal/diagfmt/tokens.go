package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cci/internal/source"
	"cci/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
	Line uint32      `json:"line,omitempty"`
	Col  uint32      `json:"col,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind.IsLiteral() || tok.Kind == token.Ident || tok.Kind == token.Invalid {
			fmt.Fprintf(w, " %q", tok.Text())
		}
		if fs != nil {
			startPos, endPos := fs.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		} else {
			fmt.Fprintf(w, " at %d-%d", tok.Span.Start, tok.Span.End)
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput формирует JSON-представление токенов без сериализации.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text(),
			Span: tok.Span,
		}
		if fs != nil {
			start, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = start.Line, start.Col
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}
