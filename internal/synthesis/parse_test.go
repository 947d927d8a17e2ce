package synthesis

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseSections_WellFormed(t *testing.T) {
	text := `SUMMARY: Quantum computing uses qubits.
It exploits superposition.

KEY CONCEPTS:
- Superposition
- Entanglement

DIFFICULTY FACTS:
1. Shor's algorithm factors integers.
2. Decoherence limits circuit depth.`

	summary, concepts, facts := parseSections(text)
	if summary != "Quantum computing uses qubits. It exploits superposition." {
		t.Errorf("summary = %q", summary)
	}
	if len(concepts) != 2 || concepts[0] != "Superposition" || concepts[1] != "Entanglement" {
		t.Errorf("concepts = %v", concepts)
	}
	if len(facts) != 2 || facts[0] != "Shor's algorithm factors integers." {
		t.Errorf("facts = %v", facts)
	}
}

func TestParseSections_MarkdownHeaders(t *testing.T) {
	text := `## Summary
Photosynthesis converts light to energy.

**Key Concepts:**
* Chlorophyll
* Light reactions

### Facts
- Plants release oxygen.`

	summary, concepts, facts := parseSections(text)
	if summary != "Photosynthesis converts light to energy." {
		t.Errorf("summary = %q", summary)
	}
	if len(concepts) != 2 {
		t.Errorf("concepts = %v", concepts)
	}
	if len(facts) != 1 || facts[0] != "Plants release oxygen." {
		t.Errorf("facts = %v", facts)
	}
}

func TestParseSections_MissingSectionsYieldZero(t *testing.T) {
	summary, concepts, facts := parseSections("SUMMARY: only a summary here.")
	if summary == "" {
		t.Error("expected summary")
	}
	if concepts != nil {
		t.Errorf("concepts = %v, want nil", concepts)
	}
	if facts != nil {
		t.Errorf("facts = %v, want nil", facts)
	}
}

func TestParseSections_EmptyInput(t *testing.T) {
	summary, concepts, facts := parseSections("")
	if summary != "" || concepts != nil || facts != nil {
		t.Errorf("got %q %v %v, want all zero", summary, concepts, facts)
	}
}

func TestParseSections_LeadingChatterIgnored(t *testing.T) {
	text := `Sure, here is the synthesis you asked for.

SUMMARY: The actual content.`

	summary, _, _ := parseSections(text)
	if summary != "The actual content." {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseSections_ProseStartingWithKeywordNotAHeader(t *testing.T) {
	text := `SUMMARY: Facts about Rome are plentiful.
Summary judgments aside, the empire fell in 476.`

	summary, _, facts := parseSections(text)
	if !strings.Contains(summary, "empire fell") {
		t.Errorf("prose line misread as header: summary = %q", summary)
	}
	if facts != nil {
		t.Errorf("facts = %v, want nil", facts)
	}
}

func TestParseSections_ListsCappedAtMaxItems(t *testing.T) {
	var b strings.Builder
	b.WriteString("KEY CONCEPTS:\n")
	for i := 0; i < MaxListItems+5; i++ {
		fmt.Fprintf(&b, "- concept %d\n", i)
	}

	_, concepts, _ := parseSections(b.String())
	if len(concepts) != MaxListItems {
		t.Errorf("len(concepts) = %d, want %d", len(concepts), MaxListItems)
	}
}

func TestCleanListItem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"- bullet", "bullet"},
		{"* star", "star"},
		{"• dot", "dot"},
		{"1. numbered", "numbered"},
		{"12) parens", "parens"},
		{"plain", "plain"},
		{"  - padded  ", "padded"},
		{"3", "3"},
	}
	for _, tt := range tests {
		if got := cleanListItem(tt.in); got != tt.want {
			t.Errorf("cleanListItem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
