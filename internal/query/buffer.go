// Package query implements the editable search-string buffer: cursor
// motion, insertion/deletion, and the word-boundary jumps bound to
// Alt-b/Alt-f/Alt-Backspace/Alt-d in the app loop.
package query

import (
	"github.com/dlclark/regexp2"
	"github.com/mattn/go-runewidth"

	"github.com/npezza93/fozzie-go/internal/ansi"
)

// wordStart matches the first character of a word; wordEnd matches the
// last. Both use regexp2's backtracking engine so \b follows the same
// word-boundary definition the query text is measured with, rather than
// RE2's narrower ASCII-only notion.
var (
	wordStart = regexp2.MustCompile(`\b\w`, regexp2.None)
	wordEnd   = regexp2.MustCompile(`\w\b`, regexp2.None)
)

// Buffer is the mutable query state: an ordered rune sequence plus a
// cursor in [0, len(runes)].
type Buffer struct {
	runes  []rune
	cursor int
	prompt string
}

// NewBuffer creates an empty buffer with the given prompt.
func NewBuffer(prompt string) *Buffer {
	return &Buffer{prompt: prompt}
}

// Runes returns a snapshot of the current query text.
func (b *Buffer) Runes() []rune {
	out := make([]rune, len(b.runes))
	copy(out, b.runes)
	return out
}

// String returns the current query text.
func (b *Buffer) String() string { return string(b.runes) }

// Render returns the current frame without mutating any state, for the
// initial prompt draw before any key has been processed.
func (b *Buffer) Render() string { return b.render() }

// Keypress inserts c at the cursor and advances it.
func (b *Buffer) Keypress(c rune) string {
	b.runes = append(b.runes[:b.cursor], append([]rune{c}, b.runes[b.cursor:]...)...)
	b.cursor++
	return b.render()
}

// Backspace removes the rune left of the cursor. ok is false (and the
// buffer unchanged) when the cursor is already at position 0.
func (b *Buffer) Backspace() (rendered string, ok bool) {
	if b.cursor == 0 {
		return "", false
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
	return b.render(), true
}

// Delete removes the rune at the cursor. ok is false (and the buffer
// unchanged) when the cursor is already at the end.
func (b *Buffer) Delete() (rendered string, ok bool) {
	if b.cursor == len(b.runes) {
		return "", false
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
	return b.render(), true
}

// Left moves the cursor one position left, returning only a cursor-move
// escape (no full redraw). ok is false at the left edge.
func (b *Buffer) Left() (string, bool) {
	if b.cursor == 0 {
		return "", false
	}
	b.cursor--
	return ansi.Left(1), true
}

// Right moves the cursor one position right, returning only a
// cursor-move escape. ok is false at the right edge.
func (b *Buffer) Right() (string, bool) {
	if b.cursor == len(b.runes) {
		return "", false
	}
	b.cursor++
	return ansi.Right(1), true
}

// Clear empties the query and resets the cursor to 0.
func (b *Buffer) Clear() string {
	b.runes = nil
	b.cursor = 0
	return b.render()
}

// SetQuery replaces the query text with text, placing the cursor at the
// end.
func (b *Buffer) SetQuery(text string) string {
	b.runes = []rune(text)
	b.cursor = len(b.runes)
	return b.render()
}

// LeftWord moves the cursor to the start of the nearest word boundary
// strictly left of the current position.
func (b *Buffer) LeftWord() string {
	starts := matchIndices(wordStart, b.runes)
	pos := 0
	for _, s := range starts {
		if s < b.cursor {
			pos = s
		} else {
			break
		}
	}
	b.cursor = pos
	return b.render()
}

// RightWord moves the cursor to the start of the nearest word boundary
// strictly right of the current position, or to the end if there is
// none.
func (b *Buffer) RightWord() string {
	starts := matchIndices(wordStart, b.runes)
	pos := len(b.runes)
	for _, s := range starts {
		if s > b.cursor {
			pos = s
			break
		}
	}
	b.cursor = pos
	return b.render()
}

// BackspaceWord deletes the span [leftWordPosition, cursor).
func (b *Buffer) BackspaceWord() string {
	starts := matchIndices(wordStart, b.runes)
	start := 0
	for _, s := range starts {
		if s < b.cursor {
			start = s
		} else {
			break
		}
	}
	b.runes = append(b.runes[:start], b.runes[b.cursor:]...)
	b.cursor = start
	return b.render()
}

// DeleteWord deletes the span [cursor, end of current word), using the
// \w\b boundary; if no such boundary exists past the cursor, deletes to
// the end of the buffer.
func (b *Buffer) DeleteWord() string {
	ends := matchIndices(wordEnd, b.runes)
	end := len(b.runes)
	for _, e := range ends {
		if e+1 > b.cursor {
			end = e + 1
			break
		}
	}
	b.runes = append(b.runes[:b.cursor], b.runes[end:]...)
	return b.render()
}

func (b *Buffer) render() string {
	col := runewidth.StringWidth(b.prompt) + b.cursor + 1
	return ansi.ClearLine() + "\r" + b.prompt + string(b.runes) + ansi.Col(col)
}

// matchIndices returns, in order, the rune index of every match of re
// against runes. regexp2 operates on the []rune view of its input
// internally, so Match.Index is already a rune offset, not a byte one;
// ASCII queries (the documented common case) make this exact regardless.
func matchIndices(re *regexp2.Regexp, runes []rune) []int {
	s := string(runes)
	var indices []int

	m, _ := re.FindStringMatch(s)
	for m != nil {
		indices = append(indices, m.Index)
		m, _ = re.FindNextMatch(m)
	}

	return indices
}
