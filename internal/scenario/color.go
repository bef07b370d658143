package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor decodes a body color label. Labels are either
// "hsl(h, s%, l%)" or "#rrggbb".
func ParseColor(label string) (colorful.Color, error) {
	label = strings.TrimSpace(label)
	if strings.HasPrefix(label, "#") {
		return colorful.Hex(label)
	}
	h, s, l, err := parseHSL(label)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Hsl(h, s, l), nil
}

// Hue returns the hue of a color label in degrees.
func Hue(label string) (float64, error) {
	if h, _, _, err := parseHSL(strings.TrimSpace(label)); err == nil {
		return h, nil
	}
	c, err := ParseColor(label)
	if err != nil {
		return 0, err
	}
	h, _, _ := c.Hsl()
	return h, nil
}

func parseHSL(label string) (h, s, l float64, err error) {
	body, ok := strings.CutPrefix(label, "hsl(")
	if !ok {
		return 0, 0, 0, fmt.Errorf("color: unrecognized label %q", label)
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return 0, 0, 0, fmt.Errorf("color: unterminated label %q", label)
	}
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("color: expected 3 components in %q", label)
	}

	var v [3]float64
	for i, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		v[i], err = strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("color: component %d of %q: %w", i, label, err)
		}
	}
	return v[0], v[1] / 100, v[2] / 100, nil
}
