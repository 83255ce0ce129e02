package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxFragments = 5
	fragmentSep  = " [...] "
	ellipsis     = "..."
)

// buildSnippet extracts a bounded-length excerpt of text around the densest
// clusters of matched terms. When nothing matches, the head of the document is
// used as the preview.
func buildSnippet(text string, terms []string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}

	positions := matchPositions(text, terms)
	if len(positions) == 0 {
		return cutAtBoundary(text, maxLen) + ellipsis
	}

	fragLen := maxLen / maxFragments
	if fragLen < 80 {
		fragLen = 80
	}
	if fragLen > maxLen {
		fragLen = maxLen
	}

	frags := clusterFragments(positions, fragLen, len(text))

	// Densest clusters first, then budget-limited selection.
	sort.Slice(frags, func(i, j int) bool {
		if frags[i].hits != frags[j].hits {
			return frags[i].hits > frags[j].hits
		}
		return frags[i].start < frags[j].start
	})

	budget := maxLen
	selected := frags[:0]
	for _, f := range frags {
		size := f.end - f.start
		if len(selected) >= maxFragments || size > budget {
			continue
		}
		selected = append(selected, f)
		budget -= size + len(fragmentSep)
	}
	if len(selected) == 0 {
		// Matches so dense that no cluster fits the budget; fall back to the
		// window around the first match.
		start := alignRuneStart(text, positions[0])
		return ellipsis + cutAtBoundary(text[start:], maxLen) + ellipsis
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].start < selected[j].start })

	parts := make([]string, 0, len(selected))
	for _, f := range selected {
		start := alignRuneStart(text, f.start)
		part := cutAtBoundary(text[start:], f.end-start)
		parts = append(parts, strings.TrimSpace(part))
	}

	out := strings.Join(parts, fragmentSep)
	if len(selected) > 0 && selected[0].start > 0 {
		out = ellipsis + out
	}
	if len(selected) > 0 && selected[len(selected)-1].end < len(text) {
		out += ellipsis
	}
	return out
}

type fragment struct {
	start, end, hits int
}

// clusterFragments groups match positions that fall within one fragment
// length of each other and pads each cluster into a centered window.
func clusterFragments(positions []int, fragLen, textLen int) []fragment {
	var frags []fragment
	cur := fragment{start: positions[0], end: positions[0], hits: 1}
	for _, p := range positions[1:] {
		if p-cur.end < fragLen {
			cur.end = p
			cur.hits++
			continue
		}
		frags = append(frags, padFragment(cur, fragLen, textLen))
		cur = fragment{start: p, end: p, hits: 1}
	}
	frags = append(frags, padFragment(cur, fragLen, textLen))
	return frags
}

func padFragment(f fragment, fragLen, textLen int) fragment {
	pad := (fragLen - (f.end - f.start)) / 2
	if pad < 0 {
		pad = 0
	}
	f.start -= pad
	f.end += pad
	if f.start < 0 {
		f.start = 0
	}
	if f.end > textLen {
		f.end = textLen
	}
	return f
}

// matchPositions returns the sorted byte offsets of every term occurrence.
func matchPositions(text string, terms []string) []int {
	lower := strings.ToLower(text)
	var positions []int
	for _, term := range terms {
		if term == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], term)
			if i < 0 {
				break
			}
			positions = append(positions, from+i)
			from += i + len(term)
		}
	}
	sort.Ints(positions)
	return positions
}

// cutAtBoundary truncates s to at most maxLen bytes, preferring a word
// boundary and never splitting a UTF-8 sequence.
func cutAtBoundary(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := alignRuneStart(s, maxLen)
	if i := strings.LastIndexByte(s[:cut], ' '); i > maxLen/2 {
		cut = i
	}
	return strings.TrimRight(s[:cut], " ")
}

// alignRuneStart moves pos left until it sits on a rune boundary.
func alignRuneStart(s string, pos int) int {
	for pos > 0 && pos < len(s) && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
