package app

import (
	"bufio"
	"io"
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"

	"github.com/npezza93/fozzie-go/internal/match"
	"github.com/npezza93/fozzie-go/internal/split"
)

// readLines reads r in full, newline-delimited, and returns every line.
// Decode failures (invalid UTF-8) are logged and the offending line is
// skipped; the read itself is never aborted by a single bad line.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			astilog.Debugf("fozzie: skipping invalid UTF-8 line")
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read stdin")
	}

	return lines, nil
}

// buildCandidates constructs one Candidate per line in parallel, over
// contiguous slabs of the line slice, preserving input order in the
// returned slice.
func buildCandidates(lines []string, s *split.Splitter) []*match.Candidate {
	n := len(lines)
	candidates := make([]*match.Candidate, n)
	if n == 0 {
		return candidates
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

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
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if s != nil {
					candidates[i] = match.NewCandidateWithOutput(
						s.MatchField(lines[i]), s.OutputField(lines[i]))
				} else {
					candidates[i] = match.NewCandidate(lines[i])
				}
			}
		}(start, end)
	}
	wg.Wait()

	return candidates
}
