// Package choicelist implements the windowed filter/sort/selection state
// over the full candidate set: one Filter call per keystroke, driving a
// fixed-height viewport onto a stably-sorted match list.
package choicelist

import (
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/npezza93/fozzie-go/internal/ansi"
	"github.com/npezza93/fozzie-go/internal/match"
)

// offset is the number of rows of context kept below the selection
// before the viewport starts scrolling.
const offset = 1

// List holds the ranking pipeline state: the immutable candidate set,
// the current match list (rebuilt on every Filter), the selection
// index, and the viewport height.
type List struct {
	candidates []*match.Candidate
	selected   int
	maxRows    int
	matches    []*match.Match
	showScores bool
	reverse    bool
}

// New builds a List over candidates with the given viewport height. If
// reverse is set, the viewport is anchored the other way: the
// best-ranked match is drawn immediately above the prompt line and the
// list grows upward, so the query stays at the bottom of its own
// list+prompt block (`-r`/`--reverse`, grounded on
// original_source's reverse_arg: "Shows the search at the bottom").
func New(candidates []*match.Candidate, maxRows int, showScores, reverse bool) *List {
	return &List{candidates: candidates, maxRows: maxRows, showScores: showScores, reverse: reverse}
}

// InitialFrame filters with query and renders the first frame: the
// filtered match list positioned before or after promptLine depending on
// orientation. In reverse mode the frame ends with promptLine, so the
// cursor is left at the prompt's input column; in forward mode it is
// moved back up to the start of the prompt row.
func (l *List) InitialFrame(query []rune, promptLine string) string {
	l.filterChoices(query)

	if l.reverse {
		return l.drawChoicesReverse() + "\r\n" + promptLine
	}
	return promptLine + "\r\n" + l.drawChoices() + "\r" + ansi.Up(l.rowsDrawn())
}

// Filter re-ranks the candidate set against query and returns the
// rendered frame for the new match list.
func (l *List) Filter(query []rune) string {
	l.filterChoices(query)
	return l.draw()
}

// Previous moves the selection up by one, wrapping to the last match.
func (l *List) Previous() string {
	if l.selected == 0 {
		l.selected = l.lastIndex()
	} else {
		l.selected--
	}
	return l.draw()
}

// Next moves the selection down by one, wrapping to the first match.
func (l *List) Next() string {
	if l.selected == l.lastIndex() {
		l.selected = 0
	} else {
		l.selected++
	}
	return l.draw()
}

// Select clears the viewport and writes the selected candidate's output
// text (see currentOutput), newline-terminated, to out (stdout).
func (l *List) Select(term io.Writer, out io.Writer) {
	io.WriteString(term, l.clearViewport())
	if len(l.matches) > 0 {
		io.WriteString(out, l.currentOutput()+"\n")
	}
}

// Cancel clears the viewport without emitting a candidate.
func (l *List) Cancel() string {
	return l.clearViewport()
}

// CurrentMatch returns the selected candidate's matched text, used by
// the Tab completion path to copy it back into the query.
func (l *List) CurrentMatch() string {
	return l.matches[l.selected].Candidate.Text
}

// currentOutput returns the selected candidate's output text (equal to
// Text outside of the split subcommand).
func (l *List) currentOutput() string {
	return l.matches[l.selected].Candidate.Output
}

// Matches exposes the current ranked match list (read-only).
func (l *List) Matches() []*match.Match { return l.matches }

func (l *List) filterChoices(query []rune) {
	l.selected = 0
	l.matches = parallelFilter(l.candidates, query)

	sort.SliceStable(l.matches, func(i, j int) bool {
		return match.Less(l.matches[i], l.matches[j])
	})
}

// parallelFilter runs Match.New over candidates split into contiguous
// slabs, one goroutine per slab, gathering every non-nil result before
// returning. Candidates are read-only throughout, so the slabs need no
// synchronization beyond the final join.
func parallelFilter(candidates []*match.Candidate, query []rune) []*match.Match {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	results := make([][]*match.Match, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var out []*match.Match
			for _, c := range candidates[start:end] {
				if m := match.New(query, c); m != nil {
					out = append(out, m)
				}
			}
			results[w] = out
		}(w, start, end)
	}
	wg.Wait()

	var matches []*match.Match
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches
}

func (l *List) draw() string {
	if l.reverse {
		return ansi.SavePosition() + ansi.Up(l.maxRows) + "\r" +
			l.drawChoicesReverse() + ansi.RestorePosition()
	}
	return ansi.SavePosition() + "\r\n" + ansi.ClearScreenDown() + "\r" +
		l.drawChoices() + ansi.RestorePosition()
}

// clearViewport returns the escape sequence that blanks the rendered
// list (and, in reverse mode, drops the cursor back onto the prompt
// row) without writing anything past the current line.
func (l *List) clearViewport() string {
	if l.reverse {
		return ansi.Up(l.maxRows) + "\r" + clearRows(l.maxRows) + "\n\r" + ansi.ClearLine() + "\r"
	}
	return "\r" + ansi.ClearScreenDown()
}

func (l *List) lastIndex() int {
	if len(l.matches) == 0 {
		return 0
	}
	return len(l.matches) - 1
}

func (l *List) drawChoices() string {
	rows := l.drawnRange()
	lines := make([]string, 0, len(rows))
	for _, i := range rows {
		lines = append(lines, l.matches[i].Draw(i == l.selected, l.showScores))
	}
	return joinCRLF(lines)
}

// drawChoicesReverse renders the viewport at a fixed height of maxRows
// lines (blank-padded when there are fewer matches), with the
// best-ranked visible match last, i.e. nearest the prompt line that
// follows. The fixed height lets draw()/clearViewport() always move up
// by exactly maxRows regardless of how many matches currently exist.
func (l *List) drawChoicesReverse() string {
	rows := l.drawnRange()
	lines := make([]string, l.maxRows)
	pad := l.maxRows - len(rows)

	for i, idx := range rows {
		pos := pad + (len(rows) - 1 - i)
		lines[pos] = l.matches[idx].Draw(idx == l.selected, l.showScores)
	}

	return joinCRLFCleared(lines)
}

func joinCRLF(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n\r"
		}
		out += line
	}
	return out
}

// joinCRLFCleared is joinCRLF with each line prefixed by a clear, so a
// shorter new line fully overwrites a longer stale one. Plain joinCRLF
// can skip this because its caller always follows a ClearScreenDown.
func joinCRLFCleared(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n\r"
		}
		out += ansi.ClearLine() + "\r" + line
	}
	return out
}

// clearRows returns n blank, cleared lines, used to wipe the reverse
// viewport on Select/Cancel.
func clearRows(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = ""
	}
	return joinCRLFCleared(lines)
}

func (l *List) rowsDrawn() int {
	if len(l.matches) < l.maxRows {
		return len(l.matches)
	}
	return l.maxRows
}

func (l *List) drawnRange() []int {
	start := l.startingPosition()
	rows := l.rowsDrawn()
	idx := make([]int, rows)
	for i := range idx {
		idx[i] = start + i
	}
	return idx
}

func (l *List) startingPosition() int {
	switch {
	case l.selected+offset < l.maxRows:
		return 0
	case l.selected+offset+1 >= len(l.matches):
		return len(l.matches) - l.maxRows
	default:
		return l.selected + offset + 1 - l.maxRows
	}
}
