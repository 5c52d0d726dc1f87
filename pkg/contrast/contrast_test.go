package contrast

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	black, white := RGB{}, RGB{255, 255, 255}
	if r := Ratio(black, white); math.Abs(r-21) > 0.01 {
		t.Errorf("Expected 21:1, got %.2f", r)
	}
	if r := Ratio(white, white); r != 1 {
		t.Errorf("Expected 1:1, got %.2f", r)
	}
	grey := RGB{0x76, 0x76, 0x76}
	if r := Ratio(grey, white); math.Abs(r-4.54) > 0.01 {
		t.Errorf("Expected ~4.54:1, got %.2f", r)
	}
	if Ratio(grey, white) != Ratio(white, grey) {
		t.Error("Ratio must be symmetric")
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		ratio   float64
		large   bool
		aa, aaa bool
	}{
		{4.5, false, true, false},
		{4.49, false, false, false},
		{3.0, true, true, false},
		{7.0, false, true, true},
		{4.5, true, true, true},
	}
	for _, tt := range tests {
		if got := MeetsAA(tt.ratio, tt.large); got != tt.aa {
			t.Errorf("MeetsAA(%v, %v) = %v", tt.ratio, tt.large, got)
		}
		if got := MeetsAAA(tt.ratio, tt.large); got != tt.aaa {
			t.Errorf("MeetsAAA(%v, %v) = %v", tt.ratio, tt.large, got)
		}
	}
}

func TestParse(t *testing.T) {
	c, err := ParseHex("#1a1a2e")
	if err != nil || c != (RGB{0x1a, 0x1a, 0x2e}) {
		t.Errorf("ParseHex #1a1a2e = %v (%v)", c, err)
	}
	c, err = ParseHex("fc0")
	if err != nil || c != (RGB{0xff, 0xcc, 0x00}) {
		t.Errorf("ParseHex fc0 = %v (%v)", c, err)
	}
	if _, err := ParseHex("#12345"); err == nil {
		t.Error("Expected error for 5-digit hex")
	}

	c, err = ParseRGB("rgba(22, 163, 74, 0.5)")
	if err != nil || c != (RGB{22, 163, 74}) {
		t.Errorf("ParseRGB = %v (%v)", c, err)
	}
	if _, err := ParseRGB("hsl(0, 0%, 0%)"); err == nil {
		t.Error("Expected error for hsl")
	}
	if c.Hex() != "#16a34a" {
		t.Errorf("Hex() = %s", c.Hex())
	}
}

func TestReadableOn(t *testing.T) {
	if ReadableOn(RGB{0xdc, 0x26, 0x26}) != (RGB{255, 255, 255}) {
		t.Error("Expected white text on red")
	}
	if ReadableOn(RGB{0xfa, 0xcc, 0x15}) != (RGB{}) {
		t.Error("Expected black text on yellow")
	}
}
