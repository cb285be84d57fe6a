// File path: internal/evidence/extractor.go
package evidence

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// minTermLength is the shortest query token searched on its own.
	minTermLength = 3
	// maxOccurrences bounds the scan on pathological inputs, e.g. a short
	// term repeated thousands of times in a large document.
	maxOccurrences = 250
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

type occurrence struct {
	start int
	end   int
	term  string
}

type window struct {
	start int
	end   int
}

// Extract scans text for the query's terms and returns up to maxSnippets
// context-windowed excerpts in ascending position order. Matching is exact
// lower-cased substring search; a term may match inside a larger word.
func Extract(text, query string, maxSnippets, contextChars int) []Snippet {
	if text == "" || maxSnippets <= 0 {
		return nil
	}
	terms := searchTerms(query)
	if len(terms) == 0 {
		return nil
	}

	lower, offsets := foldText(text)
	occurrences := make([]occurrence, 0, 16)
	for _, term := range terms {
		occurrences = scanTerm(lower, offsets, term, occurrences)
		if len(occurrences) >= maxOccurrences {
			break
		}
	}
	if len(occurrences) == 0 {
		return nil
	}
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].start < occurrences[j].start
	})

	seen := make(map[window]struct{}, len(occurrences))
	snippets := make([]Snippet, 0, maxSnippets)
	for _, occ := range occurrences {
		w := window{start: occ.start - contextChars, end: occ.end + contextChars}
		if w.start < 0 {
			w.start = 0
		}
		if w.end > len(text) {
			w.end = len(text)
		}
		if w.start > w.end {
			w.start = w.end
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		snippets = append(snippets, Snippet{
			Termo:  occ.term,
			Inicio: w.start,
			Fim:    w.end,
			Trecho: strings.TrimSpace(newlineReplacer.Replace(text[w.start:w.end])),
		})
		if len(snippets) >= maxSnippets {
			break
		}
	}
	return snippets
}

// searchTerms tokenizes the query: whitespace split, lower-cased, tokens
// shorter than minTermLength dropped. When nothing survives, the whole
// lower-cased query becomes the single term so every query gets a pass.
func searchTerms(query string) []string {
	trimmed := strings.TrimSpace(strings.ToLower(query))
	if trimmed == "" {
		return nil
	}
	fields := strings.Fields(trimmed)
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if len(field) < minTermLength {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, field)
	}
	if len(terms) == 0 {
		return []string{trimmed}
	}
	return terms
}

// scanTerm collects the non-overlapping occurrences of one term, resuming
// each search after the previous match's end. Recorded offsets are mapped
// back into the original text.
func scanTerm(lower string, offsets []int, term string, acc []occurrence) []occurrence {
	if term == "" {
		return acc
	}
	offset := 0
	for len(acc) < maxOccurrences {
		idx := strings.Index(lower[offset:], term)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(term)
		acc = append(acc, occurrence{
			start: mapOffset(offsets, start),
			end:   mapOffset(offsets, end),
			term:  term,
		})
		offset = end
	}
	return acc
}

// foldText lowers the text for scanning. Some runes change byte length
// when lowered (e.g. "Ⱥ" is two bytes, "ⱥ" is three), which would shift
// every later match; when that happens the second return value maps each
// byte of the folded text back to its originating offset in text, with a
// final entry for len(text).
func foldText(text string) (string, []int) {
	lower := strings.ToLower(text)
	if len(lower) == len(text) {
		return lower, nil
	}
	var builder strings.Builder
	builder.Grow(len(lower))
	offsets := make([]int, 0, len(lower)+1)
	for i, r := range text {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], unicode.ToLower(r))
		builder.Write(buf[:n])
		for j := 0; j < n; j++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return builder.String(), offsets
}

// mapOffset translates a folded-text offset into an original-text offset.
// A nil map means folding did not move any bytes.
func mapOffset(offsets []int, i int) int {
	if offsets == nil {
		return i
	}
	return offsets[i]
}
