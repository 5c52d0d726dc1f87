// Package contrast implements the WCAG 2.x relative luminance and contrast
// ratio formulas.
package contrast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGB is an sRGB colour with 8-bit channels
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func linear(v uint8) float64 {
	f := float64(v) / 255
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

func RelativeLuminance(c RGB) float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

// Ratio returns the contrast ratio between two colours, from 1 to 21
func Ratio(a, b RGB) float64 {
	l1, l2 := RelativeLuminance(a), RelativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// MeetsAA reports whether ratio satisfies level AA (4.5:1, or 3:1 for large text)
func MeetsAA(ratio float64, largeText bool) bool {
	if largeText {
		return ratio >= 3.0
	}
	return ratio >= 4.5
}

// MeetsAAA reports whether ratio satisfies level AAA (7:1, or 4.5:1 for large text)
func MeetsAAA(ratio float64, largeText bool) bool {
	if largeText {
		return ratio >= 4.5
	}
	return ratio >= 7.0
}

// ParseHex parses #rgb or #rrggbb, with or without the leading #
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

var rgbPattern = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*[\d.]+\s*)?\)`)

// ParseRGB parses a CSS rgb() or rgba() value; alpha is ignored
func ParseRGB(s string) (RGB, error) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, fmt.Errorf("invalid rgb colour %q", s)
	}
	var ch [3]uint8
	for i := range ch {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return RGB{}, fmt.Errorf("invalid rgb colour %q", s)
		}
		ch[i] = uint8(n)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ReadableOn picks black or white text, whichever contrasts more with bg
func ReadableOn(bg RGB) RGB {
	black, white := RGB{}, RGB{255, 255, 255}
	if Ratio(bg, black) >= Ratio(bg, white) {
		return black
	}
	return white
}
