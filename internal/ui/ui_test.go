package ui

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	got := ProgressBar(1, 4, 8)
	if !strings.HasPrefix(got, "██░░░░░░") || !strings.HasSuffix(got, " 25%") {
		t.Errorf("ProgressBar(1,4,8) = %q", got)
	}
	if got := ProgressBar(0, 0, 2); !strings.HasSuffix(got, "  0%") {
		t.Errorf("empty list bar = %q", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		maxLines int
		want     []string
	}{
		{"fits", "Milk", 10, 2, []string{"Milk"}},
		{"wraps", "abcdefgh", 3, 5, []string{"abc", "def", "gh"}},
		{"cuts", "abcdefgh", 3, 2, []string{"abc", "de…"}},
		{"paragraphs", "a\nb\nc", 5, 2, []string{"a", "b…"}},
		{"trailing newline", "a\n", 5, 1, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in, tt.width, tt.maxLines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Clamp(%q, %d, %d) = %q, want %q", tt.in, tt.width, tt.maxLines, got, tt.want)
			}
		})
	}
}

func TestPanelAndMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)
	SetTheme("classic")

	Panel([]string{"Tarefas", "ok"})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("panel has %d lines: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.HasPrefix(lines[3], "└") {
		t.Errorf("unexpected borders %q", out.String())
	}
	if visibleWidth(lines[1]) != visibleWidth(lines[2]) {
		t.Errorf("rows not padded: %q", lines[1:3])
	}

	Fail("boom")
	if !strings.Contains(errOut.String(), "✖ boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestStars(t *testing.T) {
	SetTheme("classic")
	if got := Stars(3); got != "★★★☆☆" {
		t.Errorf("Stars(3) = %q", got)
	}
	if got := Stars(9); got != "★★★★★" {
		t.Errorf("Stars(9) = %q", got)
	}
}
