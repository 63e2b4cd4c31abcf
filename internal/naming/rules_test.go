package naming_test

import (
	"strings"
	"testing"

	"filerename/internal/naming"
)

// jsonRules mirrors the rule document shipped alongside the original tool.
func jsonRules() naming.RuleSet {
	return naming.NewRuleSet(
		[]string{":", "@", ")", "?"},
		[]naming.Replacement{{From: "(", To: "- "}},
	)
}

var corpus = []string{
	"",
	"abc",
	"abc : def",
	"abc (def)",
	"  leading and trailing  ",
	"tabs\tand\nnewlines",
	"Artist (Live) : Remastered",
	"((double))",
	"a::b",
	"what? (who@where)",
	"#EXTINF:123,Artist - Title",
	" #EXTINF:1,(x)",
	"#EXT",
	"track 01 (demo)",
	"日本語 (テスト)",
	"x#EXTy (z)",
	"- (- ) -",
}

func TestTransformDefaultExamples(t *testing.T) {
	rules := naming.DefaultRuleSet()
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"abc : def", "abc def"},
		{"abc (def)", "abc - def)"},
		{"  spaced   out  ", "spaced out"},
		{"Album (Deluxe): Disc 1", "Album - Deluxe) Disc 1"},
		{"#EXTM3U", "#EXTM3U"},
		{"#EXTINF:10,Song (Live)", "#EXTINF:10,Song (Live)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := rules.Transform(tt.input); got != tt.want {
				t.Fatalf("Transform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformReplacesBeforeRemoving(t *testing.T) {
	rules := naming.NewRuleSet(
		[]string{"!"},
		[]naming.Replacement{{From: "*", To: "!x"}},
	)
	if got := rules.Transform("a*b"); got != "axb" {
		t.Fatalf("expected replacement output to be stripped by removal, got %q", got)
	}
}

func TestTransformAppliesReplacementsInOrder(t *testing.T) {
	rules := naming.NewRuleSet(nil, []naming.Replacement{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	})
	if got := rules.Transform("ab"); got != "cc" {
		t.Fatalf("expected ordered application, got %q", got)
	}
	reversed := naming.NewRuleSet(nil, []naming.Replacement{
		{From: "b", To: "c"},
		{From: "a", To: "b"},
	})
	if got := reversed.Transform("ab"); got != "bc" {
		t.Fatalf("expected ordered application, got %q", got)
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	for name, rules := range map[string]naming.RuleSet{
		"default": naming.DefaultRuleSet(),
		"json":    jsonRules(),
		"empty":   naming.NewRuleSet(nil, nil),
	} {
		for _, input := range corpus {
			once := rules.Transform(input)
			twice := rules.Transform(once)
			if once != twice {
				t.Fatalf("%s rules: Transform not idempotent for %q: %q then %q", name, input, once, twice)
			}
		}
	}
}

func TestTransformNormalizesWhitespace(t *testing.T) {
	rules := jsonRules()
	for _, input := range corpus {
		if strings.HasPrefix(input, naming.DirectivePrefix) {
			continue
		}
		out := rules.Transform(input)
		if out != strings.TrimSpace(out) {
			t.Fatalf("Transform(%q) = %q has surrounding whitespace", input, out)
		}
		if strings.Contains(out, "  ") {
			t.Fatalf("Transform(%q) = %q has repeated spaces", input, out)
		}
		if strings.ContainsAny(out, "\t\n\r") {
			t.Fatalf("Transform(%q) = %q kept non-space whitespace", input, out)
		}
	}
}

func TestTransformLeavesDirectivesUntouched(t *testing.T) {
	rules := jsonRules()
	for _, input := range []string{"#EXT", "#EXTM3U", "#EXTINF:-1,A (b) : c  ", "#EXT-X-VERSION:3"} {
		if got := rules.Transform(input); got != input {
			t.Fatalf("Transform(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestTransformStemKeepsExtension(t *testing.T) {
	rules := naming.NewRuleSet([]string{"."}, []naming.Replacement{{From: "(", To: "- "}})
	tests := []struct {
		input string
		want  string
	}{
		{"song (live).mp3", "song - live).mp3"},
		{"a.b.c.mp3", "abc.mp3"},
		{"no extension", "no extension"},
		{".hidden", "hidden"},
		{"Track (1).MP4", "Track - 1).MP4"},
	}
	for _, tt := range tests {
		if got := rules.TransformStem(tt.input); got != tt.want {
			t.Fatalf("TransformStem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRuleSetAccessorsReturnCopies(t *testing.T) {
	rules := jsonRules()
	remove := rules.Remove()
	remove[0] = "changed"
	replace := rules.Replace()
	replace[0].To = "changed"
	if rules.Remove()[0] != ":" || rules.Replace()[0].To != "- " {
		t.Fatal("expected rule set to be immutable through accessors")
	}
}

func TestSplitStem(t *testing.T) {
	tests := []struct {
		name, stem, ext string
	}{
		{"song.mp3", "song", ".mp3"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".hidden", ".hidden", ""},
		{"trailing.", "trailing", "."},
	}
	for _, tt := range tests {
		stem, ext := naming.SplitStem(tt.name)
		if stem != tt.stem || ext != tt.ext {
			t.Fatalf("SplitStem(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.stem, tt.ext)
		}
	}
}
