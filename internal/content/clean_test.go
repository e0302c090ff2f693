package content

import (
	"strings"
	"testing"
)

func TestCleanStripsImageMarkers(t *testing.T) {
	in := "Intro text. [CONTENT IMAGE: chart of results] More text."
	got := Clean(in)
	if strings.Contains(got, "CONTENT IMAGE") {
		t.Errorf("image marker not stripped: %q", got)
	}
	if !strings.Contains(got, "Intro text.") || !strings.Contains(got, "More text.") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestCleanStripsSourceLines(t *testing.T) {
	in := "Claim here. Source: https://example.com/study further text"
	got := Clean(in)
	if strings.Contains(got, "example.com") {
		t.Errorf("source line not stripped: %q", got)
	}
}

func TestCleanConvertsH2Markers(t *testing.T) {
	got := Clean("H2: Section Title\nBody.")
	if !strings.HasPrefix(got, "## Section Title") {
		t.Errorf("H2 marker not converted: %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("a\n\n\n\nb\t\tc   d")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank runs not collapsed: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("space runs not collapsed: %q", got)
	}
}

func TestCleanUnwrapsJSONEnvelope(t *testing.T) {
	got := Clean(`{"content": "Wrapped body text."}`)
	if got != "Wrapped body text." {
		t.Errorf("expected unwrapped content, got %q", got)
	}
}

func TestCleanRemovesLeftoverBrackets(t *testing.T) {
	got := Clean("before [aside note] after")
	if strings.Contains(got, "[") {
		t.Errorf("bracketed text not removed: %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two three"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestScanPronounsOutsideQuotes(t *testing.T) {
	scan := ScanPronouns(`I think this works. "I disagree," said the customer. My view stands.`)
	if scan.Count != 2 {
		t.Errorf("expected 2 pronouns outside quotes, got %d (%v)", scan.Count, scan.Found)
	}
	if !scan.Flag {
		t.Error("expected flag to be set")
	}
}

func TestScanPronounsCurlyQuotes(t *testing.T) {
	scan := ScanPronouns("“I loved it,” they wrote. Me too.")
	if scan.Count != 1 {
		t.Errorf("expected 1 pronoun outside curly quotes, got %d (%v)", scan.Count, scan.Found)
	}
}

func TestScanPronounsUnterminatedQuote(t *testing.T) {
	scan := ScanPronouns(`He said "I will handle it and never closed the quote`)
	if scan.Count != 0 {
		t.Errorf("expected unterminated quote to swallow pronouns, got %d", scan.Count)
	}
}

func TestScanPronounsNone(t *testing.T) {
	scan := ScanPronouns("The team shipped the feature on time.")
	if scan.Count != 0 || scan.Flag {
		t.Errorf("expected clean scan, got %+v", scan)
	}
}

func TestScanPronounsWordBoundaries(t *testing.T) {
	// "mine" inside "undermine" must not match
	scan := ScanPronouns("Do not undermine the memo.")
	if scan.Count != 0 {
		t.Errorf("expected no matches, got %v", scan.Found)
	}
}
