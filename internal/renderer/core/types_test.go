package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    Color
		wantErr bool
	}{
		{"full with hash", "#FF8000", ColorFromRGB(255, 128, 0), false},
		{"full without hash", "00ff7f", ColorFromRGB(0, 255, 127), false},
		{"short form", "#fff", ColorWhite, false},
		{"short form black", "000", ColorBlack, false},
		{"bad length", "#ABCD", Color{}, true},
		{"bad digits", "#GGHHII", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorFromHex(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"", "default", "DEFAULT", "  default "} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", s, err)
		}
		if c != ColorDefault {
			t.Errorf("ParseColor(%q) = %v, want default", s, c)
		}
	}

	c, err := ParseColor("#102030")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if c != ColorFromRGB(0x10, 0x20, 0x30) {
		t.Errorf("ParseColor = %v", c)
	}

	if _, err := ParseColor("blue"); err == nil {
		t.Error("ParseColor(\"blue\") should fail")
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("ColorDefault.String() = %q", got)
	}
	if got := ColorFromRGB(1, 171, 255).String(); got != "#01ABFF" {
		t.Errorf("String() = %q, want #01ABFF", got)
	}
}

func TestFaceEquality(t *testing.T) {
	a := NewFace(ColorRed, ColorDefault)
	b := Fg(ColorFromRGB(255, 0, 0))
	if a != b {
		t.Error("faces with the same colours should be equal")
	}
	if a == DefaultFace {
		t.Error("red face should not equal the default face")
	}
	if !DefaultFace.IsDefault() {
		t.Error("DefaultFace.IsDefault() should be true")
	}
	if a.IsDefault() {
		t.Error("red face should not be default")
	}
	if got := a.String(); got != "#FF0000/default" {
		t.Errorf("String() = %q", got)
	}
}
