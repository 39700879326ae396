package gutter

import (
	"testing"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{99, 2},
		{100, 3},
		{12345, 5},
	}

	for _, tt := range tests {
		if got := Width(tt.lines); got != tt.want {
			t.Errorf("Width(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"1", 3, "  1"},
		{"123", 3, "123"},
		{"1234", 3, "1234"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := PadLeft(tt.s, tt.width); got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestLineNumbersFormat(t *testing.T) {
	ln := NewLineNumbers(DefaultFace)

	tests := []struct {
		name      string
		row       int
		lineCount int
		want      string
	}{
		{"single digit", 0, 5, "1 "},
		{"right aligned", 0, 12, " 1 "},
		{"widest", 11, 12, "12 "},
		{"hundreds", 6, 100, "  7 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ln.Format(tt.row, tt.lineCount); got != tt.want {
				t.Errorf("Format(%d, %d) = %q, want %q", tt.row, tt.lineCount, got, tt.want)
			}
			if got := ln.Columns(tt.lineCount); got != len(tt.want) {
				t.Errorf("Columns(%d) = %d, want %d", tt.lineCount, got, len(tt.want))
			}
		})
	}
}

func TestLineNumbersMinWidth(t *testing.T) {
	ln := LineNumbers{Face: DefaultFace, MinWidth: 3}

	if got := ln.Format(1, 5); got != "  2 " {
		t.Errorf("Format() = %q, want %q", got, "  2 ")
	}
	if got := ln.Columns(5000); got != 5 {
		t.Errorf("Columns(5000) = %d, want 5", got)
	}
}

func TestLineNumbersPrepend(t *testing.T) {
	ln := NewLineNumbers(core.Fg(core.ColorRed))
	segs := []segment.Segment{{Face: core.DefaultFace, Text: "fn main"}}

	got := ln.Prepend(2, 3, segs)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "3 " || got[0].Face != ln.Face {
		t.Errorf("gutter segment = %+v", got[0])
	}
	if got[1] != segs[0] {
		t.Errorf("text segment = %+v, want %+v", got[1], segs[0])
	}
	if len(segs) != 1 {
		t.Error("Prepend modified its input")
	}
}
