package diag

import "fmt"

// Severity orders diagnostics: an error outranks a warning, a warning outranks info.
type Severity uint8

const (
	SevInfo    Severity = iota // тайминги и прочие сводки
	SevWarning                 // литерал принят, но подозрителен
	SevError                   // токен помечен Invalid
)

var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the form used by the pretty and JSON renderers.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Label is the lower-case form of the one-line "file:line:col: error CODE" output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// AtLeast reports whether s is as severe as floor or more.
func (s Severity) AtLeast(floor Severity) bool { return s >= floor }
