// Package app wires decoded key events to query and choice-list
// mutations and drives the top-level render loop, CLI parsing, and the
// benchmark/split subcommands.
package app

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	defaultLines  = 10
	defaultPrompt = "❯ "
)

// SplitOptions configures the `split` subcommand: match on one field of
// a delimited line, output another.
type SplitOptions struct {
	Delimiter string
	Field     int
	Output    int
}

// Options is the parsed CLI surface described in spec.md §6.
type Options struct {
	Lines      int
	Prompt     string
	Query      string
	ShowScores bool
	Reverse    bool
	Verbose    bool
	Benchmark  bool
	Split      *SplitOptions
}

func defaultOptions() *Options {
	return &Options{Lines: defaultLines, Prompt: defaultPrompt}
}

// ParseOptions walks args (os.Args[1:]) and returns the resolved
// Options, or a validation error naming the offending argument.
func ParseOptions(args []string) (*Options, error) {
	opts := defaultOptions()

	if len(args) > 0 && args[0] == "benchmark" {
		opts.Benchmark = true
		return parseBenchmark(opts, args[1:])
	}
	if len(args) > 0 && args[0] == "split" {
		return parseSplit(opts, args[1:])
	}

	return parseMain(opts, args)
}

func parseMain(opts *Options, args []string) (*Options, error) {
	var val *string

	nextString := func(i *int, message string) (string, error) {
		defer func() { val = nil }()
		if val != nil {
			return *val, nil
		}
		if *i+1 >= len(args) {
			return "", errors.New(message)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--") && strings.IndexByte(arg, '=') > 0 {
			parts := strings.SplitN(arg, "=", 2)
			arg = parts[0]
			val = &parts[1]
		}

		switch arg {
		case "-l", "--lines":
			str, err := nextString(&i, "lines argument required")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(str)
			if err != nil || n < 1 {
				return nil, errors.New("--lines must be a positive integer")
			}
			opts.Lines = n
		case "-p", "--prompt":
			str, err := nextString(&i, "prompt argument required")
			if err != nil {
				return nil, err
			}
			opts.Prompt = str
		case "-q", "--query":
			str, err := nextString(&i, "query argument required")
			if err != nil {
				return nil, err
			}
			opts.Query = str
		case "-s", "--show-scores":
			opts.ShowScores = true
		case "-r", "--reverse":
			opts.Reverse = true
		case "-v", "--verbose":
			opts.Verbose = true
		default:
			return nil, errors.Errorf("unknown argument: %s", arg)
		}
	}

	return opts, nil
}

func parseBenchmark(opts *Options, args []string) (*Options, error) {
	var val *string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--") && strings.IndexByte(arg, '=') > 0 {
			parts := strings.SplitN(arg, "=", 2)
			arg = parts[0]
			val = &parts[1]
		}
		switch arg {
		case "-q", "--query":
			if val != nil {
				opts.Query = *val
				val = nil
				continue
			}
			if i+1 >= len(args) {
				return nil, errors.New("query argument required")
			}
			i++
			opts.Query = args[i]
		case "-v", "--verbose":
			opts.Verbose = true
		default:
			return nil, errors.Errorf("unknown argument: %s", arg)
		}
	}
	if opts.Query == "" {
		return nil, errors.New("benchmark requires -q/--query")
	}
	return opts, nil
}

func parseSplit(opts *Options, args []string) (*Options, error) {
	split := &SplitOptions{}
	haveField := false

	var val *string
	nextString := func(i *int, message string) (string, error) {
		defer func() { val = nil }()
		if val != nil {
			return *val, nil
		}
		if *i+1 >= len(args) {
			return "", errors.New(message)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--") && strings.IndexByte(arg, '=') > 0 {
			parts := strings.SplitN(arg, "=", 2)
			arg = parts[0]
			val = &parts[1]
		}

		switch arg {
		case "-d", "--delimiter":
			str, err := nextString(&i, "delimiter argument required")
			if err != nil {
				return nil, err
			}
			split.Delimiter = str
		case "-f", "--field":
			str, err := nextString(&i, "field argument required")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(str)
			if err != nil || n < 1 {
				return nil, errors.New("--field must be a positive integer")
			}
			split.Field = n
			haveField = true
		case "-o", "--output":
			str, err := nextString(&i, "output argument required")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(str)
			if err != nil || n < 1 {
				return nil, errors.New("--output must be a positive integer")
			}
			split.Output = n
		case "-l", "--lines":
			str, err := nextString(&i, "lines argument required")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(str)
			if err != nil || n < 1 {
				return nil, errors.New("--lines must be a positive integer")
			}
			opts.Lines = n
		case "-p", "--prompt":
			str, err := nextString(&i, "prompt argument required")
			if err != nil {
				return nil, err
			}
			opts.Prompt = str
		case "-v", "--verbose":
			opts.Verbose = true
		default:
			return nil, errors.Errorf("unknown argument: %s", arg)
		}
	}

	if split.Delimiter == "" {
		return nil, errors.New("split requires -d/--delimiter")
	}
	if !haveField {
		return nil, errors.New("split requires -f/--field")
	}
	if split.Output == 0 {
		split.Output = split.Field
	}

	opts.Split = split
	return opts, nil
}
