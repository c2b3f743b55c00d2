package repl

import (
	"strings"

	"cci/internal/token"
)

var commands = []string{":help", ":json", ":literals", ":quit", ":tokens"}

// Complete is the liner completer: ':' commands at the start of the line,
// C keywords for the word under the cursor.
func Complete(line string) []string {
	if strings.HasPrefix(line, ":") {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	}
	cut := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	head, word := line[:cut+1], line[cut+1:]
	if word == "" {
		return nil
	}
	var out []string
	for _, kw := range token.Keywords() {
		if strings.HasPrefix(kw, word) {
			out = append(out, head+kw)
		}
	}
	return out
}
