// File path: internal/evidence/extractor_test.go
package evidence

import (
	"strings"
	"testing"
)

func TestExtractFindsEachOccurrence(t *testing.T) {
	text := "The sensor drift affects calibration. Sensor noise is common."
	snippets := Extract(text, "sensor", 5, 10)
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d: %+v", len(snippets), snippets)
	}
	if snippets[0].Termo != "sensor" || snippets[1].Termo != "sensor" {
		t.Fatalf("unexpected terms: %+v", snippets)
	}
	if snippets[0].Inicio > snippets[1].Inicio {
		t.Fatal("expected snippets ordered by position")
	}
	for _, s := range snippets {
		if s.Inicio < 0 || s.Fim > len(text) {
			t.Fatalf("window out of bounds: %+v", s)
		}
		if s.Trecho != strings.TrimSpace(s.Trecho) {
			t.Fatalf("excerpt not trimmed: %q", s.Trecho)
		}
	}
	// Context of up to 10 chars each side around the first match at offset 4.
	if snippets[0].Trecho != "The sensor drift aff" {
		t.Fatalf("unexpected first excerpt: %q", snippets[0].Trecho)
	}
}

func TestExtractRespectsMaxSnippets(t *testing.T) {
	text := strings.Repeat("sensor reading. padding padding padding. ", 10)
	snippets := Extract(text, "sensor", 3, 5)
	if len(snippets) != 3 {
		t.Fatalf("expected max 3 snippets, got %d", len(snippets))
	}
}

func TestExtractMinOfOccurrencesAndMax(t *testing.T) {
	text := "alpha ... beta ... alpha"
	snippets := Extract(text, "alpha", 10, 3)
	if len(snippets) != 2 {
		t.Fatalf("expected min(k, max) = 2 snippets, got %d", len(snippets))
	}
}

func TestExtractNoDuplicateWindows(t *testing.T) {
	// Both terms occur inside one short text; the clamped windows collapse
	// to the full text and must be suppressed after the first.
	text := "abc def"
	snippets := Extract(text, "abc def", 10, 500)
	if len(snippets) != 1 {
		t.Fatalf("expected identical windows deduplicated, got %d: %+v", len(snippets), snippets)
	}
	if snippets[0].Inicio != 0 || snippets[0].Fim != len(text) {
		t.Fatalf("expected full-text window, got %+v", snippets[0])
	}
}

func TestExtractOverlappingWindowsBothKept(t *testing.T) {
	text := "sensor sensor"
	snippets := Extract(text, "sensor", 10, 3)
	if len(snippets) != 2 {
		t.Fatalf("expected overlapping but distinct windows kept, got %d", len(snippets))
	}
}

func TestExtractNewlinesCollapsed(t *testing.T) {
	text := "before\nsensor\nafter"
	snippets := Extract(text, "sensor", 1, 50)
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	if strings.ContainsAny(snippets[0].Trecho, "\n\r") {
		t.Fatalf("expected newlines collapsed, got %q", snippets[0].Trecho)
	}
	if snippets[0].Trecho != "before sensor after" {
		t.Fatalf("unexpected excerpt: %q", snippets[0].Trecho)
	}
}

func TestExtractShortQueryFallsBackToWholeQuery(t *testing.T) {
	text := "the ph of the medium"
	snippets := Extract(text, "pH", 5, 5)
	if len(snippets) != 1 {
		t.Fatalf("expected whole-query fallback to match, got %d snippets", len(snippets))
	}
	if snippets[0].Termo != "ph" {
		t.Fatalf("expected lower-cased query as term, got %q", snippets[0].Termo)
	}
}

func TestExtractShortTokensDropped(t *testing.T) {
	text := "an ox and a box"
	// "ox" is shorter than the term threshold and must not match on its
	// own when a long-enough token exists.
	snippets := Extract(text, "ox box", 10, 2)
	for _, s := range snippets {
		if s.Termo != "box" {
			t.Fatalf("expected only the long token to be searched, got %+v", snippets)
		}
	}
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet for box, got %d", len(snippets))
	}
}

func TestExtractNonOverlappingSelfRepeats(t *testing.T) {
	// "aaaa" contains "aa" at 0,1,2 but scanning resumes after each match.
	snippets := Extract("aaaa", "aa", 10, 0)
	if len(snippets) != 2 {
		t.Fatalf("expected 2 non-overlapping matches, got %d: %+v", len(snippets), snippets)
	}
	if snippets[0].Inicio != 0 || snippets[1].Inicio != 2 {
		t.Fatalf("unexpected offsets: %+v", snippets)
	}
}

func TestExtractOccurrenceCap(t *testing.T) {
	text := strings.Repeat("term ", 1000)
	snippets := Extract(text, "term", 1000, 0)
	if len(snippets) > maxOccurrences {
		t.Fatalf("occurrence cap exceeded: %d", len(snippets))
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	snippets := Extract("SENSOR drift", "Sensor", 5, 4)
	if len(snippets) != 1 {
		t.Fatalf("expected case-insensitive match, got %d", len(snippets))
	}
}

func TestExtractLengthChangingRunesNoPanic(t *testing.T) {
	// "Ⱥ" is two bytes but lowers to the three-byte "ⱥ", so a naive scan of
	// the lowered text yields offsets past the end of the original.
	text := strings.Repeat("Ⱥ", 200) + " sensor"
	snippets := Extract(text, "sensor", 5, 80)
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d: %+v", len(snippets), snippets)
	}
	s := snippets[0]
	if s.Inicio < 0 || s.Fim > len(text) || s.Inicio > s.Fim {
		t.Fatalf("window out of bounds for len %d: %+v", len(text), s)
	}
	if !strings.Contains(s.Trecho, "sensor") {
		t.Fatalf("expected excerpt to contain the match, got %q", s.Trecho)
	}
}

func TestExtractOffsetsAccurateAfterFolding(t *testing.T) {
	text := "Ⱥ sensor"
	snippets := Extract(text, "sensor", 1, 0)
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	s := snippets[0]
	// "Ⱥ" plus a space is three bytes in the original text.
	if s.Inicio != 3 || s.Fim != 9 {
		t.Fatalf("expected original-text offsets [3,9], got [%d,%d]", s.Inicio, s.Fim)
	}
	if text[s.Inicio:s.Fim] != "sensor" {
		t.Fatalf("offsets do not address the match: %q", text[s.Inicio:s.Fim])
	}
}

func TestExtractEmptyInputs(t *testing.T) {
	if got := Extract("", "sensor", 5, 10); got != nil {
		t.Fatalf("expected nil for empty text, got %+v", got)
	}
	if got := Extract("some text", "   ", 5, 10); got != nil {
		t.Fatalf("expected nil for blank query, got %+v", got)
	}
	if got := Extract("some text", "sensor", 0, 10); got != nil {
		t.Fatalf("expected nil for zero budget, got %+v", got)
	}
}

func TestSearchTermsDeduplicates(t *testing.T) {
	terms := searchTerms("Sensor sensor SENSOR drift")
	if len(terms) != 2 {
		t.Fatalf("expected deduplicated terms, got %v", terms)
	}
}
