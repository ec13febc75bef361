package choicelist

import (
	"strings"
	"testing"

	"github.com/npezza93/fozzie-go/internal/match"
)

func candidates(lines ...string) []*match.Candidate {
	out := make([]*match.Candidate, len(lines))
	for i, l := range lines {
		out[i] = match.NewCandidate(l)
	}
	return out
}

func TestFilterEmptyQueryPreservesInputOrder(t *testing.T) {
	l := New(candidates("banana", "apple", "cherry"), 10, false, false)
	l.Filter(nil)

	want := []string{"banana", "apple", "cherry"}
	got := l.Matches()
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Candidate.Text != w {
			t.Errorf("matches[%d] = %q, want %q", i, got[i].Candidate.Text, w)
		}
	}
}

func TestFilterTiesPreserveInputOrder(t *testing.T) {
	// Two candidates that score identically (both exact, equal length)
	// exercise the stable-sort tie-break; they are told apart by pointer.
	cs := candidates("foo", "foo")
	l := New(cs, 10, false, false)
	l.Filter([]rune("foo"))

	got := l.Matches()
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0].Candidate != cs[0] || got[1].Candidate != cs[1] {
		t.Errorf("tied matches reordered: want input order preserved")
	}
}

func TestFilterDropsNonMatches(t *testing.T) {
	l := New(candidates("apple", "banana", "cherry"), 10, false, false)
	l.Filter([]rune("an"))

	got := l.Matches()
	if len(got) != 1 || got[0].Candidate.Text != "banana" {
		t.Fatalf("got %+v, want only banana", got)
	}
}

func TestNextPreviousWrap(t *testing.T) {
	l := New(candidates("a", "b", "c"), 10, false, false)
	l.Filter(nil)

	l.Previous() // wraps up from 0 to last
	if l.matches[l.selected].Candidate.Text != "c" {
		t.Fatalf("Previous() from index 0 should wrap to last match")
	}

	l.Next() // wraps down from last back to 0
	if l.matches[l.selected].Candidate.Text != "a" {
		t.Fatalf("Next() from last match should wrap to first")
	}
}

func TestSelectWritesOutputOnlyWhenMatchesExist(t *testing.T) {
	l := New(candidates("one", "two"), 10, false, false)
	l.Filter(nil)

	var term, out strings.Builder
	l.Select(&term, &out)

	if got := out.String(); got != "one\n" {
		t.Fatalf("Select() wrote %q, want %q", got, "one\n")
	}
	if term.Len() == 0 {
		t.Fatal("Select() should still clear the terminal viewport")
	}
}

func TestSelectWritesNothingWithNoMatches(t *testing.T) {
	l := New(candidates("one", "two"), 10, false, false)
	l.Filter([]rune("zzz"))

	var term, out strings.Builder
	l.Select(&term, &out)

	if out.Len() != 0 {
		t.Fatalf("Select() with no matches wrote %q, want empty", out.String())
	}
}

func TestCancelClearsWithoutOutput(t *testing.T) {
	l := New(candidates("one"), 10, false, false)
	rendered := l.Cancel()
	if rendered == "" {
		t.Fatal("Cancel() should return a clear sequence")
	}
}

func TestStartingPositionStaysAtZeroWhileSelectionNearTop(t *testing.T) {
	l := New(candidates("a", "b", "c", "d", "e"), 3, false, false)
	l.Filter(nil)
	l.selected = 1

	if got := l.startingPosition(); got != 0 {
		t.Errorf("startingPosition() = %d, want 0", got)
	}
}

func TestStartingPositionScrollsAheadOfSelection(t *testing.T) {
	l := New(candidates("a", "b", "c", "d", "e"), 3, false, false)
	l.Filter(nil)
	l.selected = 3

	// offset=1, maxRows=3: selected+offset (4) >= maxRows(3), and
	// selected+offset+1 (5) >= len(matches)(5), so the window pins to
	// the bottom: len(matches)-maxRows = 2.
	if got := l.startingPosition(); got != 2 {
		t.Errorf("startingPosition() = %d, want 2", got)
	}
}

func TestRowsDrawnCapsAtMaxRows(t *testing.T) {
	l := New(candidates("a", "b", "c", "d", "e"), 3, false, false)
	l.Filter(nil)

	if got := l.rowsDrawn(); got != 3 {
		t.Errorf("rowsDrawn() = %d, want 3", got)
	}
}

func TestRowsDrawnWithFewerMatchesThanRows(t *testing.T) {
	l := New(candidates("a", "b"), 5, false, false)
	l.Filter(nil)

	if got := l.rowsDrawn(); got != 2 {
		t.Errorf("rowsDrawn() = %d, want 2", got)
	}
}

func TestDrawChoicesReverseBestMatchNearestPrompt(t *testing.T) {
	// maxRows=5, 2 matches: pad=3, so match0 (best, selected) lands in
	// the last line of the block and match1 in the second-to-last,
	// leaving the first 3 lines blank.
	l := New(candidates("one", "two"), 5, false, true)
	l.Filter(nil)

	rendered := l.drawChoicesReverse()
	lines := strings.Split(rendered, "\n\r")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5 (fixed maxRows height)", len(lines))
	}
	for i := 0; i < 3; i++ {
		if strings.TrimPrefix(lines[i], "\x1B[2K\r") != "" {
			t.Errorf("line %d = %q, want blank padding", i, lines[i])
		}
	}
	if !strings.Contains(lines[3], "two") {
		t.Errorf("line 3 = %q, want it to contain %q", lines[3], "two")
	}
	if !strings.Contains(lines[4], "one") {
		t.Errorf("line 4 (nearest prompt) = %q, want it to contain %q", lines[4], "one")
	}
}

func TestDrawChoicesReverseFixedHeightRegardlessOfMatchCount(t *testing.T) {
	l := New(candidates("a", "b", "c"), 4, false, true)
	l.Filter([]rune("zzz")) // no matches

	rendered := l.drawChoicesReverse()
	lines := strings.Split(rendered, "\n\r")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 even with zero matches", len(lines))
	}
}

func TestReverseInitialFrameListPrecedesPrompt(t *testing.T) {
	l := New(candidates("one", "two"), 3, false, true)
	rendered := l.InitialFrame(nil, "prompt> ")

	listEnd := strings.Index(rendered, "\r\nprompt> ")
	if listEnd == -1 {
		t.Fatalf("InitialFrame() = %q, want the prompt line to follow the list", rendered)
	}
}

func TestForwardInitialFramePromptPrecedesList(t *testing.T) {
	l := New(candidates("one", "two"), 3, false, false)
	rendered := l.InitialFrame(nil, "prompt> ")

	if !strings.HasPrefix(rendered, "prompt> \r\n") {
		t.Fatalf("InitialFrame() = %q, want the prompt line to come first", rendered)
	}
}

func TestReverseClearViewportReturnsToPromptRow(t *testing.T) {
	l := New(candidates("one", "two"), 4, false, true)
	l.Filter(nil)

	rendered := l.clearViewport()
	if !strings.HasPrefix(rendered, "\x1B[4A\r") {
		t.Errorf("clearViewport() = %q, want it to start by moving up maxRows rows", rendered)
	}
}
