package app

import "testing"

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := ParseOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Lines != defaultLines {
		t.Errorf("Lines = %d, want %d", opts.Lines, defaultLines)
	}
	if opts.Prompt != defaultPrompt {
		t.Errorf("Prompt = %q, want %q", opts.Prompt, defaultPrompt)
	}
	if opts.Benchmark || opts.Split != nil {
		t.Error("no subcommand flags should be set by default")
	}
}

func TestParseOptionsFlags(t *testing.T) {
	opts, err := ParseOptions([]string{"-l", "20", "-p", "$ ", "-q", "seed", "-s"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Lines != 20 {
		t.Errorf("Lines = %d, want 20", opts.Lines)
	}
	if opts.Prompt != "$ " {
		t.Errorf("Prompt = %q, want %q", opts.Prompt, "$ ")
	}
	if opts.Query != "seed" {
		t.Errorf("Query = %q, want seed", opts.Query)
	}
	if !opts.ShowScores {
		t.Error("ShowScores should be true")
	}
}

func TestParseOptionsVerboseAndReverse(t *testing.T) {
	opts, err := ParseOptions([]string{"-v", "-r"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Verbose {
		t.Error("Verbose should be true")
	}
	if !opts.Reverse {
		t.Error("Reverse should be true")
	}
}

func TestParseOptionsBenchmarkAcceptsVerboseButNotReverse(t *testing.T) {
	opts, err := ParseOptions([]string{"benchmark", "-q", "term", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Verbose {
		t.Error("Verbose should be true")
	}

	if _, err := ParseOptions([]string{"benchmark", "-q", "term", "-r"}); err == nil {
		t.Error("benchmark should reject -r/--reverse, matching original_source's scoping of reverse_arg to the top-level command")
	}
}

func TestParseOptionsSplitAcceptsVerboseButNotReverse(t *testing.T) {
	opts, err := ParseOptions([]string{"split", "-d", ":", "-f", "1", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Verbose {
		t.Error("Verbose should be true")
	}

	if _, err := ParseOptions([]string{"split", "-d", ":", "-f", "1", "-r"}); err == nil {
		t.Error("split should reject -r/--reverse, matching original_source's scoping of reverse_arg to the top-level command")
	}
}

func TestParseOptionsEqualsForm(t *testing.T) {
	opts, err := ParseOptions([]string{"--lines=15", "--prompt=>"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Lines != 15 {
		t.Errorf("Lines = %d, want 15", opts.Lines)
	}
	if opts.Prompt != ">" {
		t.Errorf("Prompt = %q, want >", opts.Prompt)
	}
}

func TestParseOptionsRejectsUnknownFlag(t *testing.T) {
	if _, err := ParseOptions([]string{"--nope"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestParseOptionsRejectsNonPositiveLines(t *testing.T) {
	if _, err := ParseOptions([]string{"-l", "0"}); err == nil {
		t.Error("expected an error for --lines 0")
	}
	if _, err := ParseOptions([]string{"-l", "abc"}); err == nil {
		t.Error("expected an error for a non-numeric --lines")
	}
}

func TestParseOptionsBenchmarkRequiresQuery(t *testing.T) {
	if _, err := ParseOptions([]string{"benchmark"}); err == nil {
		t.Error("expected an error when benchmark is missing -q")
	}

	opts, err := ParseOptions([]string{"benchmark", "-q", "term"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Benchmark || opts.Query != "term" {
		t.Errorf("got %+v, want Benchmark=true Query=term", opts)
	}
}

func TestParseOptionsSplitRequiresDelimiterAndField(t *testing.T) {
	if _, err := ParseOptions([]string{"split", "-f", "1"}); err == nil {
		t.Error("expected an error when split is missing -d")
	}
	if _, err := ParseOptions([]string{"split", "-d", ":"}); err == nil {
		t.Error("expected an error when split is missing -f")
	}
}

func TestParseOptionsSplitDefaultsOutputToField(t *testing.T) {
	opts, err := ParseOptions([]string{"split", "-d", ":", "-f", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Split.Field != 2 || opts.Split.Output != 2 {
		t.Errorf("got Split=%+v, want Field=2 Output=2", opts.Split)
	}
}

func TestParseOptionsSplitExplicitOutput(t *testing.T) {
	opts, err := ParseOptions([]string{"split", "-d", ":", "-f", "1", "-o", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Split.Output != 3 {
		t.Errorf("Output = %d, want 3", opts.Split.Output)
	}
}
