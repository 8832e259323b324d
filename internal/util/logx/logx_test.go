package logx

import (
	"strings"
	"testing"
)

func TestRingKeepsLastLines(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Info)
	for i := 0; i < maxLines+10; i++ {
		Infof("line %d", i)
	}
	lines := Lines()
	if len(lines) != maxLines {
		t.Fatalf("expected %d lines, got %d", maxLines, len(lines))
	}
	if !strings.HasSuffix(lines[len(lines)-1], "line 509") {
		t.Fatalf("last line: %s", lines[len(lines)-1])
	}
}

func TestLevelFiltersLines(t *testing.T) {
	SetLevel(Error)
	defer SetLevel(Info)
	Warnf("should-not-appear-xyz")
	if strings.Contains(Dump(), "should-not-appear-xyz") {
		t.Fatalf("warn line logged at error level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, " INFO ": Info, "warning": Warn, "error": Error}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v,%v", in, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("unexpected ok for unknown level")
	}
}
