package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNumberLines(t *testing.T) {
	src := strings.Repeat("x\n", 10)
	lines := strings.Split(strings.TrimSuffix(NumberLines(src), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != " 1: x" || lines[9] != "10: x" {
		t.Errorf("first %q last %q", lines[0], lines[9])
	}
}

func TestCompileErrorCarriesSource(t *testing.T) {
	src, err := Preprocess("#version 410 core\nuniform float uA[MAX_WAVES];\n", Source{Defines: []Define{{"MAX_WAVES", "5"}}})
	if err != nil {
		t.Fatal(err)
	}
	var wrapped error = fmt.Errorf("scene: %w", &CompileError{
		Program: "bake",
		Stage:   "fragment",
		Log:     "ERROR: 0:3: syntax error\n\x00",
		Source:  src,
	})

	var ce *CompileError
	if !errors.As(wrapped, &ce) || ce.Program != "bake" {
		t.Fatalf("errors.As failed on %v", wrapped)
	}
	msg := wrapped.Error()
	for _, want := range []string{"bake fragment: ERROR: 0:3: syntax error", "2: #define MAX_WAVES 5", "3: uniform float uA[MAX_WAVES];"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "\x00") {
		t.Error("message keeps the NUL terminator")
	}

	link := &CompileError{Program: "debug", Stage: "link", Log: "unresolved"}
	if got := link.Error(); got != "debug link: unresolved" {
		t.Errorf("link error = %q", got)
	}
}
