package token

import "fmt"

// Span is a source-location triple, diagnostic only: it never affects the
// meaning of a compilation, only where an error or node is reported.
type Span struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// File tracks the raw source of one compilation input and the byte offsets
// of each line start, so the lexer can turn byte offsets into line/column
// pairs without rescanning from the beginning each time.
type File struct {
	Name  string
	Src   []byte
	Index int // position of this file within a compilation's ordered file list

	lineStarts []int // byte offset of the first byte of each line
}

// NewFile wraps src for filename, precomputing line-start offsets.
func NewFile(name string, index int, src []byte) *File {
	f := &File{Name: name, Src: src, Index: index}
	f.lineStarts = []int{0}
	for i, b := range src {
		if b == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LineOffset returns the byte offset of the start of the n-th (0-based)
// line, or len(Src) if n is out of range.
func (f *File) LineOffset(n int) int {
	if n < 0 || n >= len(f.lineStarts) {
		return len(f.Src)
	}
	return f.lineStarts[n]
}

// NumLines reports how many lines the file was split into.
func (f *File) NumLines() int {
	return len(f.lineStarts)
}

// Position converts a byte offset into a 1-based line/column Span.
func (f *File) Position(offset int) Span {
	line := 0
	for i, start := range f.lineStarts {
		if start > offset {
			break
		}
		line = i
	}
	col := offset - f.lineStarts[line] + 1
	return Span{File: f.Name, Line: line + 1, Column: col}
}
