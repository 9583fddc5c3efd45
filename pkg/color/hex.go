package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// ParseHex parses a "#RRGGBB" hex string (case-insensitive) into an Rgb.
func ParseHex(s string) (Rgb, error) {
	canon, err := CanonicalHex(s)
	if err != nil {
		return Rgb{}, err
	}
	v, err := strconv.ParseUint(canon[1:], 16, 32)
	if err != nil {
		return Rgb{}, lerr.New(lerr.InvalidHexCode, "color: invalid hex code %q: %w", s, err)
	}
	return Rgb{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex renders the color as a canonical uppercase "#RRGGBB" string.
func (c Rgb) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CanonicalHex validates and uppercases a "#RRGGBB" hex string. Comparisons
// by hex code must always go through this function first so that loader,
// config, and palette-key comparisons are never case-sensitive.
func CanonicalHex(s string) (string, error) {
	if len(s) != 7 || s[0] != '#' {
		return "", lerr.New(lerr.InvalidHexCode, "color: invalid hex code %q, expected #RRGGBB", s)
	}
	hexPart := s[1:]
	for _, r := range hexPart {
		isHexDigit := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHexDigit {
			return "", lerr.New(lerr.InvalidHexCode, "color: invalid hex code %q, expected #RRGGBB", s)
		}
	}
	return "#" + strings.ToUpper(hexPart), nil
}
