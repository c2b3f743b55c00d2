package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// Loc is a single absolute byte position inside one file.
type Loc struct {
	File FileID
	Off  uint32
}

func (s Span) Empty() bool {
	return s.Start >= s.End
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// StartLoc returns the position of the first byte of the span.
func (s Span) StartLoc() Loc {
	return Loc{File: s.File, Off: s.Start}
}

// EndLoc returns the position one past the last byte of the span.
func (s Span) EndLoc() Loc {
	return Loc{File: s.File, Off: s.End}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.File, l.Off)
}

// Next returns the location n bytes after l.
func (l Loc) Next(n uint32) Loc {
	return Loc{File: l.File, Off: l.Off + n}
}

// To builds the span [l, end). Both locations must belong to the same file.
func (l Loc) To(end Loc) Span {
	return Span{File: l.File, Start: l.Off, End: end.Off}
}

// Through builds the span that starts at l and includes the byte at last.
func (l Loc) Through(last Loc) Span {
	return Span{File: l.File, Start: l.Off, End: last.Off + 1}
}
