package diag

import "fmt"

// Span points at the origin of a diagnostic inside an input file. Line and
// Col are 1-based; Col 0 means the whole line. File may be "-" for stdin.
type Span struct {
	File string
	Line uint32
	Col  uint32
}

func (s Span) String() string {
	if s == (Span{}) {
		return ""
	}
	if s.Col == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
