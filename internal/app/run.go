package app

import (
	"fmt"
	"io"
	"time"

	"github.com/asticode/go-astilog"

	"github.com/npezza93/fozzie-go/internal/choicelist"
	"github.com/npezza93/fozzie-go/internal/match"
	"github.com/npezza93/fozzie-go/internal/query"
	"github.com/npezza93/fozzie-go/internal/rawterm"
	"github.com/npezza93/fozzie-go/internal/split"
)

// benchmarkPasses is the number of non-interactive filter passes the
// benchmark subcommand runs before reporting timing and exiting.
const benchmarkPasses = 100

// Run parses args, wires the reader/query/choice-list/terminal
// together, and drives the event loop to completion. It returns the
// process exit code: 0 on selection, 1 on cancel or any validation or
// runtime error, per spec.md §6's binary exit-code contract.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := ParseOptions(args)
	if err != nil {
		fmt.Fprintln(stderr, "fozzie:", err)
		return 1
	}

	astilog.SetLogger(astilog.New(astilog.Configuration{Verbose: opts.Verbose}))

	var splitter *split.Splitter
	if opts.Split != nil {
		splitter, err = split.New(opts.Split.Delimiter, opts.Split.Field, opts.Split.Output)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	lines, err := readLines(stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	candidates := buildCandidates(lines, splitter)

	if opts.Benchmark {
		runBenchmark(opts, candidates)
		return 0
	}

	term, err := rawterm.Open()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer term.Close()

	if _, rows, ok := term.Size(); ok && opts.Lines >= rows {
		fmt.Fprintln(stderr, "fozzie: --lines must be less than the terminal's row count")
		return 1
	}

	return runInteractive(term, opts, candidates, stdout)
}

// runBenchmark runs the filter pipeline benchmarkPasses times against a
// fixed query with no terminal attached, and logs the elapsed time.
// Grounded on original_source's benches/choices.rs, which benchmarks
// exactly this filter pass.
func runBenchmark(opts *Options, candidates []*match.Candidate) {
	list := choicelist.New(candidates, opts.Lines, opts.ShowScores, false)
	queryRunes := []rune(opts.Query)

	start := time.Now()
	for i := 0; i < benchmarkPasses; i++ {
		list.Filter(queryRunes)
	}
	elapsed := time.Since(start)

	astilog.Infof("fozzie: %d passes over %d candidates in %s (%s/pass)",
		benchmarkPasses, len(candidates), elapsed, elapsed/benchmarkPasses)
}

// runInteractive drives the single-threaded cooperative event loop
// described in spec.md §4.8/§5: block on the next key, mutate query
// and/or choice-list state, write exactly one flushed frame.
func runInteractive(term *rawterm.Terminal, opts *Options, candidates []*match.Candidate, stdout io.Writer) int {
	q := query.NewBuffer(opts.Prompt)
	list := choicelist.New(candidates, opts.Lines, opts.ShowScores, opts.Reverse)

	promptLine := q.Render()
	if opts.Query != "" {
		promptLine = q.SetQuery(opts.Query)
	}
	term.Print(list.InitialFrame(q.Runes(), promptLine))

	for {
		key, err := term.Next()
		if err != nil {
			return 1
		}

		switch key.Type {
		case rawterm.KeyChar:
			term.Print(q.Keypress(key.Rune))
			term.Print(list.Filter(q.Runes()))
		case rawterm.KeyBackspace:
			if rendered, ok := q.Backspace(); ok {
				term.Print(rendered)
				term.Print(list.Filter(q.Runes()))
			}
		case rawterm.KeyLeft:
			if rendered, ok := q.Left(); ok {
				term.Print(rendered)
			}
		case rawterm.KeyRight:
			if rendered, ok := q.Right(); ok {
				term.Print(rendered)
			}
		case rawterm.KeyUp:
			term.Print(list.Previous())
		case rawterm.KeyDown:
			term.Print(list.Next())
		case rawterm.KeyTab:
			if len(list.Matches()) > 0 {
				term.Print(q.SetQuery(list.CurrentMatch()))
				term.Print(list.Filter(q.Runes()))
			}
		case rawterm.KeyEnter:
			list.Select(writerFunc(term.Print), stdout)
			return 0
		case rawterm.KeyEsc:
			term.Print(list.Cancel())
			return 1
		case rawterm.KeyCtrl:
			switch key.Rune {
			case 'd':
				if rendered, ok := q.Delete(); ok {
					term.Print(rendered)
					term.Print(list.Filter(q.Runes()))
				}
			case 'u':
				term.Print(q.Clear())
				term.Print(list.Filter(q.Runes()))
			case 'c':
				term.Print(list.Cancel())
				return 1
			}
		case rawterm.KeyAlt:
			switch key.Rune {
			case 'b':
				term.Print(q.LeftWord())
				term.Print(list.Filter(q.Runes()))
			case 'f':
				term.Print(q.RightWord())
				term.Print(list.Filter(q.Runes()))
			case 127:
				term.Print(q.BackspaceWord())
				term.Print(list.Filter(q.Runes()))
			case 'd':
				term.Print(q.DeleteWord())
				term.Print(list.Filter(q.Runes()))
			}
		}
	}
}

// writerFunc adapts a func(string) into an io.Writer so choicelist's
// io.Writer-based API can be driven directly by Terminal.Print.
type writerFunc func(string)

func (f writerFunc) Write(p []byte) (int, error) {
	f(string(p))
	return len(p), nil
}
