// Package ast defines the in-memory model for a parsed Liberty file: the
// Value variants, Attribute, Define, and Group types, plus the query and
// formatting methods that operate on a Group tree.
package ast

import (
	"sort"

	"github.com/qigel/liberty/reporter"
)

// LineTracker records the offset of every line start seen so far (the
// lexer passes rune indexes into its source), so the lexer can turn an
// offset into a 1-based line/column pair
// for diagnostics without rescanning the buffer. Adapted from the
// teacher's FileInfo line index, stripped of the comment/token
// bookkeeping this grammar does not need.
type LineTracker struct {
	lines []int // offset of the start of each line; lines[0] == 0
}

func NewLineTracker() *LineTracker {
	return &LineTracker{lines: []int{0}}
}

// AddLine records that a newline was just consumed at offset
// (the offset of the character AFTER the newline starts the next line).
func (t *LineTracker) AddLine(offsetAfterNewline int) {
	n := len(t.lines)
	if n == 0 || t.lines[n-1] < offsetAfterNewline {
		t.lines = append(t.lines, offsetAfterNewline)
	}
}

// Pos resolves a byte offset into a reporter.Pos.
func (t *LineTracker) Pos(offset int) reporter.Pos {
	// sort.Search finds the first line whose start is > offset; the line
	// we want is the one before that.
	idx := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset })
	line := idx // 1-based since t.lines[0] == 0 corresponds to line 1
	col := offset - t.lines[idx-1] + 1
	return reporter.Pos{Line: line, Col: col, Offset: offset}
}
