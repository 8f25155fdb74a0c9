package darkcss

import "strings"

// ColorRole says whether a color paints text or a surface.
type ColorRole int

const (
	Foreground ColorRole = iota
	Background
)

func (r ColorRole) String() string {
	if r == Background {
		return "background"
	}
	return "foreground"
}

const (
	minForegroundLightness = 60
	maxBackgroundLightness = 30
)

var (
	// DarkForeground is where grayscale text collapses to.
	DarkForeground = ColorValue{H: 0, S: 0, L: 100, A: 1}
	// DarkBackground is the deep surface tone grayscale backgrounds collapse to.
	DarkBackground = ColorValue{H: 230, S: 12, L: 10, A: 1}
)

// RoleForProperty maps a CSS property or legacy attribute name to its role.
// ok is false for properties that carry no remappable color. Borders take
// the background rule so they stay dark next to the surfaces they frame.
func RoleForProperty(name string) (role ColorRole, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "color", "-webkit-text-fill-color", "text":
		return Foreground, true
	case "background-color", "bgcolor", "background",
		"border-color", "border",
		"border-top", "border-right", "border-bottom", "border-left",
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color":
		return Background, true
	}
	return Foreground, false
}

// longhandFor names the property an override is written to. Shorthands are
// only extracted when their whole value is one color, so the matching color
// longhand carries the same meaning without resetting width or style.
func longhandFor(property string) string {
	switch property {
	case "background":
		return "background-color"
	case "border":
		return "border-color"
	case "border-top", "border-right", "border-bottom", "border-left":
		return property + "-color"
	}
	return property
}

// Remap returns the dark-mode counterpart of c. Grayscale colors collapse to
// DarkForeground or DarkBackground; chromatic colors keep hue and saturation
// and only have their lightness bounded. Alpha is never touched.
func Remap(c ColorValue, role ColorRole) ColorValue {
	if c.S == 0 {
		out := DarkForeground
		if role == Background {
			out = DarkBackground
		}
		out.A = c.A
		return out
	}
	out := c
	switch role {
	case Foreground:
		if out.L < minForegroundLightness {
			out.L = minForegroundLightness
		}
	case Background:
		if out.L > maxBackgroundLightness {
			out.L = maxBackgroundLightness
		}
	}
	return out
}

// DarkModeColor parses raw and returns the remapped hsla() text.
func DarkModeColor(raw string, role ColorRole) (string, error) {
	col, err := ParseColor(raw)
	if err != nil {
		return "", err
	}
	return Remap(col, role).CSS(), nil
}
