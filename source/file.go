package source

import (
	"fmt"
	"sort"
)

type File struct {
	Path string
	Text string

	lineStarts []int
}

func NewFile(path, text string) *File {
	f := &File{Path: path, Text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Location returns the span [start, end) with its 1-based line and column.
func (f *File) Location(start, end int) Location {
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > start
	})
	return Location{
		File:   f.Path,
		Line:   line,
		Column: start - f.lineStarts[line-1] + 1,
		Start:  start,
		End:    end,
	}
}

type Location struct {
	File   string
	Line   int
	Column int
	Start  int
	End    int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Start != other.Start {
		return l.Start < other.Start
	}
	return l.End < other.End
}

func (l Location) Combine(other Location) Location {
	if other.Less(l) {
		l, other = other, l
	}
	l.End = max(l.End, other.End)
	return l
}
