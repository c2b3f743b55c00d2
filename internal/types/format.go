package types

import (
	"strconv"
	"strings"
)

// Format spells qt as C would write it in a cast: "const char *", "int [4]".
func (in *Interner) Format(qt QualType) string {
	var b strings.Builder
	in.format(&b, qt)
	return b.String()
}

func (in *Interner) format(b *strings.Builder, qt QualType) {
	tt, ok := in.Lookup(qt.ID)
	if !ok {
		b.WriteString("<invalid>")
		return
	}
	switch tt.Kind {
	case KindPointer:
		in.format(b, tt.Elem)
		b.WriteString(" *")
		if qt.Quals != 0 {
			b.WriteByte(' ')
			b.WriteString(qt.Quals.String())
		}
	case KindArray:
		in.format(b, tt.Elem)
		b.WriteString(" [")
		b.WriteString(strconv.FormatUint(uint64(tt.Count), 10))
		b.WriteByte(']')
	default:
		if qt.Quals != 0 {
			b.WriteString(qt.Quals.String())
			b.WriteByte(' ')
		}
		if tt.Unsigned {
			b.WriteString("unsigned ")
		}
		b.WriteString(tt.Kind.String())
	}
}
