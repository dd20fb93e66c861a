package theme

import (
	"fmt"
	"strconv"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
)

func pickForeground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return fallback
}

func pickBackground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Background.IsSet() {
			return entry.Background.String()
		}
	}
	return fallback
}

func autoDelta(bg string, darkDelta int, lightDelta int) int {
	r, g, b, ok := parseHexRGB(bg)
	if !ok {
		return darkDelta
	}
	l := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	if l < 128 {
		return darkDelta
	}
	return lightDelta
}

func adjustTone(hex string, delta int) string {
	r, g, b, ok := parseHexRGB(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r+delta), clamp8(g+delta), clamp8(b+delta))
}

func parseHexRGB(hex string) (int, int, int, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int((v >> 16) & 0xFF), int((v >> 8) & 0xFF), int(v & 0xFF), true
}

// validColor accepts "#RRGGBB", "#RGB" and ANSI palette indexes "0".."255".
func validColor(c string) bool {
	c = strings.TrimSpace(c)
	if strings.HasPrefix(c, "#") {
		h := c[1:]
		if len(h) != 3 && len(h) != 6 {
			return false
		}
		_, err := strconv.ParseUint(h, 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}

func clamp8(v int) int {
	return max(0, min(v, 255))
}
