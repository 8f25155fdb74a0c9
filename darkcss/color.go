package darkcss

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is wrapped by every ParseError.
var ErrInvalidColor = errors.New("invalid color")

// ParseError reports a color literal that matches none of the supported grammars.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse color %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidColor }

// ColorValue is the canonical HSLA form every parsed color converges on.
// H is in degrees [0,360), S and L in percent [0,100], A in [0,1].
type ColorValue struct {
	H float64
	S float64
	L float64
	A float64
}

// NewColorValue normalizes the components: hue modulo 360, the rest clamped.
// A non-finite hue becomes 0.
func NewColorValue(h, s, l, a float64) ColorValue {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return ColorValue{H: h, S: clamp(s, 0, 100), L: clamp(l, 0, 100), A: clamp(a, 0, 1)}
}

// FromRGBA builds a ColorValue from channels in [0,1]. H, S and L are rounded
// to whole units so that equal colors written in different notations compare equal.
func FromRGBA(r, g, b, a float64) ColorValue {
	col := colorful.Color{R: clamp(r, 0, 1), G: clamp(g, 0, 1), B: clamp(b, 0, 1)}
	h, s, l := col.Hsl()
	return NewColorValue(math.Round(h), math.Round(s*100), math.Round(l*100), a)
}

// RGBA returns the channels in [0,1].
func (c ColorValue) RGBA() (r, g, b, a float64) {
	col := colorful.Hsl(c.H, c.S/100, c.L/100).Clamped()
	return col.R, col.G, col.B, c.A
}

// Hex returns the #rrggbb form, ignoring alpha.
func (c ColorValue) Hex() string {
	r, g, b, _ := c.RGBA()
	return colorful.Color{R: r, G: g, B: b}.Hex()
}

// CSS serializes the color as hsla(h, s%, l%, a) with one decimal of alpha.
func (c ColorValue) CSS() string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)",
		int(math.Round(c.H))%360,
		int(math.Round(c.S)),
		int(math.Round(c.L)),
		strconv.FormatFloat(c.A, 'f', 1, 64),
	)
}

func (c ColorValue) String() string { return c.CSS() }

// RelativeLuminance follows WCAG 2.0.
func (c ColorValue) RelativeLuminance() float64 {
	toLinear := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	r, g, b, _ := c.RGBA()
	return 0.2126*toLinear(r) + 0.7152*toLinear(g) + 0.0722*toLinear(b)
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1,21].
func ContrastRatio(a, b ColorValue) float64 {
	la := a.RelativeLuminance()
	lb := b.RelativeLuminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ParseColor turns a CSS color literal into a ColorValue. It tries hex,
// rgb()/rgba(), hsl()/hsla() and then the named-color table.
func ParseColor(raw string) (ColorValue, error) {
	s := normalizeColorText(raw)
	if s == "" {
		return ColorValue{}, &ParseError{Input: raw, Reason: "empty value"}
	}
	if col, ok := parseHex(s); ok {
		return col, nil
	}
	switch {
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		col, err := parseRGBFunctional(s)
		if err != nil {
			return ColorValue{}, &ParseError{Input: raw, Reason: err.Error()}
		}
		return col, nil
	case strings.HasPrefix(s, "hsl(") || strings.HasPrefix(s, "hsla("):
		col, err := parseHSLFunctional(s)
		if err != nil {
			return ColorValue{}, &ParseError{Input: raw, Reason: err.Error()}
		}
		return col, nil
	}
	if col, ok := namedColors[s]; ok {
		return col, nil
	}
	switch s {
	case "transparent", "currentcolor", "inherit", "initial", "unset":
		return ColorValue{}, &ParseError{Input: raw, Reason: "keyword carries no color"}
	}
	return ColorValue{}, &ParseError{Input: raw, Reason: "unknown syntax"}
}

// IsColor reports whether raw parses as a color.
func IsColor(raw string) bool {
	_, err := ParseColor(raw)
	return err == nil
}

func normalizeColorText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.Index(s, "!important"); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}

func parseHex(s string) (ColorValue, bool) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4:
		exp := make([]byte, 0, 8)
		for i := 0; i < len(hex); i++ {
			exp = append(exp, hex[i], hex[i])
		}
		hex = string(exp)
	case 6, 8:
	default:
		return ColorValue{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorValue{}, false
	}
	r := float64((v>>24)&0xff) / 255
	g := float64((v>>16)&0xff) / 255
	b := float64((v>>8)&0xff) / 255
	a := float64(v&0xff) / 255
	return FromRGBA(r, g, b, a), true
}

// splitFunctional returns the arguments between the parentheses. Both the
// comma form and the space form with "/ alpha" are accepted.
func splitFunctional(expr string) ([]string, error) {
	open := strings.IndexByte(expr, '(')
	close := strings.IndexByte(expr, ')')
	if open < 0 || close <= open+1 {
		return nil, errors.New("malformed function")
	}
	if rest := strings.TrimSpace(expr[close+1:]); rest != "" {
		return nil, errors.New("trailing characters")
	}
	inner := expr[open+1 : close]
	var parts []string
	if strings.Contains(inner, ",") {
		parts = strings.Split(inner, ",")
	} else {
		parts = strings.Fields(strings.ReplaceAll(inner, "/", " / "))
		if len(parts) == 5 && parts[3] == "/" {
			parts = append(parts[:3], parts[4])
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New("empty component")
		}
		out = append(out, p)
	}
	if len(out) < 3 || len(out) > 4 {
		return nil, fmt.Errorf("expected 3 or 4 components, got %d", len(out))
	}
	return out, nil
}

// cssNumberRe is the CSS <number> token: no hex floats, no nan or inf.
var cssNumberRe = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:e[+-]?[0-9]+)?$`)

// parseNumber reads a CSS <number> and rejects anything that does not fit
// a finite float64.
func parseNumber(s string) (float64, bool) {
	if !cssNumberRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// fraction converts "50%" to 0.5 and a bare number n to n/max.
func fraction(component string, max float64) (float64, error) {
	if strings.HasSuffix(component, "%") {
		v, ok := parseNumber(strings.TrimSuffix(component, "%"))
		if !ok {
			return 0, fmt.Errorf("bad percentage %q", component)
		}
		return clamp(v/100, 0, 1), nil
	}
	v, ok := parseNumber(component)
	if !ok {
		return 0, fmt.Errorf("bad number %q", component)
	}
	return clamp(v/max, 0, 1), nil
}

func parseAlpha(parts []string) (float64, error) {
	if len(parts) < 4 {
		return 1, nil
	}
	return fraction(parts[3], 1)
}

func parseRGBFunctional(expr string) (ColorValue, error) {
	parts, err := splitFunctional(expr)
	if err != nil {
		return ColorValue{}, err
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		if ch[i], err = fraction(parts[i], 255); err != nil {
			return ColorValue{}, err
		}
	}
	a, err := parseAlpha(parts)
	if err != nil {
		return ColorValue{}, err
	}
	return FromRGBA(ch[0], ch[1], ch[2], a), nil
}

func parseHSLFunctional(expr string) (ColorValue, error) {
	parts, err := splitFunctional(expr)
	if err != nil {
		return ColorValue{}, err
	}
	h, ok := parseNumber(strings.TrimSuffix(parts[0], "deg"))
	if !ok {
		return ColorValue{}, fmt.Errorf("bad hue %q", parts[0])
	}
	if !strings.HasSuffix(parts[1], "%") || !strings.HasSuffix(parts[2], "%") {
		return ColorValue{}, errors.New("saturation and lightness must be percentages")
	}
	s, err := fraction(parts[1], 100)
	if err != nil {
		return ColorValue{}, err
	}
	l, err := fraction(parts[2], 100)
	if err != nil {
		return ColorValue{}, err
	}
	a, err := parseAlpha(parts)
	if err != nil {
		return ColorValue{}, err
	}
	return NewColorValue(math.Round(h), math.Round(s*100), math.Round(l*100), a), nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
