package synthesis

import (
	"strings"
	"unicode"
)

// Free-text section parsing is the fragile edge of the pipeline, so it is
// kept here as pure functions with no dependencies. A parse miss on one
// field must only blank that field, never the whole record; the caller
// substitutes per-field placeholders.

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionSummary
	sectionConcepts
	sectionFacts
)

// parseSections splits a model response into the summary prose and the two
// lists by locating section headers. Unrecognized leading text is ignored;
// a missing section yields its zero value.
func parseSections(text string) (summary string, concepts, facts []string) {
	var summaryLines []string
	current := sectionNone

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if kind, rest := matchHeader(line); kind != sectionNone {
			current = kind
			// Content may follow the header on the same line.
			line = rest
			if line == "" {
				continue
			}
		}

		switch current {
		case sectionSummary:
			summaryLines = append(summaryLines, line)
		case sectionConcepts:
			if item := cleanListItem(line); item != "" && len(concepts) < MaxListItems {
				concepts = append(concepts, item)
			}
		case sectionFacts:
			if item := cleanListItem(line); item != "" && len(facts) < MaxListItems {
				facts = append(facts, item)
			}
		}
	}

	return strings.Join(summaryLines, " "), concepts, facts
}

// matchHeader reports whether the line opens a recognized section and
// returns any content trailing the header on the same line.
func matchHeader(line string) (sectionKind, string) {
	stripped := strings.TrimLeft(line, "#*- \t")
	lower := strings.ToLower(stripped)

	for _, h := range []struct {
		keyword string
		kind    sectionKind
	}{
		{"summary", sectionSummary},
		{"key concepts", sectionConcepts},
		{"key concept", sectionConcepts},
		{"concepts", sectionConcepts},
		{"difficulty facts", sectionFacts},
		{"difficulty-appropriate facts", sectionFacts},
		{"facts", sectionFacts},
	} {
		if !strings.HasPrefix(lower, h.keyword) {
			continue
		}
		rest := stripped[len(h.keyword):]
		rest = strings.TrimLeft(rest, "*")
		// A real header ends here or continues with a separator; a prose
		// line that merely starts with the word does not count.
		if rest != "" && !strings.HasPrefix(rest, ":") {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		return h.kind, rest
	}

	return sectionNone, ""
}

// cleanListItem strips leading bullet and number markers from a list line.
func cleanListItem(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•")
	s = strings.TrimSpace(s)

	// Numbered markers: "1." "12)" etc.
	i := 0
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = s[i+1:]
	}

	return strings.TrimSpace(s)
}
