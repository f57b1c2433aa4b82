package dfa

import (
	"strings"
	"testing"

	"github.com/jclyne/pattern-scanner/expr"
)

func TestWriteDot(t *testing.T) {
	d := Compile(expr.Vector{mustParse(t, "a[0-9]")}, nil)
	var sb strings.Builder
	if err := WriteDot(&sb, d); err != nil {
		t.Fatalf("WriteDot error: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "digraph dfa {") {
		t.Errorf("missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, "start -> s0") {
		t.Error("missing start edge")
	}
	if !strings.Contains(out, "doublecircle") {
		t.Error("no accepting state rendered")
	}
	if !strings.Contains(out, "0-9") {
		t.Error("range label not compacted")
	}
	if !strings.Contains(out, "style=dashed") {
		t.Error("default edges not rendered")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Error("graph not closed")
	}
}
