package darkcss

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// SupportLevel is the verdict on whether a message body gets dark-mode CSS.
type SupportLevel int

const (
	// NotSupported leaves the message untouched.
	NotSupported SupportLevel = iota
	// NativeSupported means the sender ships its own dark styling.
	NativeSupported
	// EngineSupported means override CSS should be generated and injected.
	EngineSupported
)

func (l SupportLevel) String() string {
	switch l {
	case NativeSupported:
		return "native"
	case EngineSupported:
		return "engine"
	default:
		return "unsupported"
	}
}

// Preference is the user's dark-mode setting.
type Preference int

const (
	FollowSystem Preference = iota
	ForceOff
)

func (p Preference) String() string {
	if p == ForceOff {
		return "force-off"
	}
	return "follow-system"
}

// ParsePreference accepts the String forms plus a few aliases; anything
// unrecognised means FollowSystem.
func ParsePreference(s string) Preference {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "force-off", "forceoff", "off", "light", "never":
		return ForceOff
	}
	return FollowSystem
}

var (
	metaSelector  = cascadia.MustCompile("meta[name][content]")
	tableSelector = cascadia.MustCompile("table")

	prefersDarkRe = regexp.MustCompile(`(?i)prefers-color-scheme\s*:\s*dark`)
	colorSchemeRe = regexp.MustCompile(`(?i)(?:^|[;{\s])(?:supported-)?color-scheme\s*:\s*[^;}]*\bdark\b`)
)

// Classify decides the support level with default Options.
func Classify(src string, isNewsletter, isPlainText bool, pref Preference) SupportLevel {
	return (&Engine{}).Classify(src, isNewsletter, isPlainText, pref)
}

func classifyDocument(doc *html.Node, pref Preference, opts Options) SupportLevel {
	if pref == FollowSystem && hasNativeDarkMode(doc) {
		return NativeSupported
	}
	body := findFirstByTag(doc, "body")
	if body == nil {
		body = doc
	}
	if !opts.AllowTables && tableSelector.MatchFirst(body) != nil {
		return NotSupported
	}
	if opts.MaxNestingDepth > 0 && maxDepth(body) > opts.MaxNestingDepth {
		return NotSupported
	}
	return EngineSupported
}

// hasNativeDarkMode looks for the sender's own dark-mode signals: the
// color-scheme meta tags, a color-scheme declaration or a
// prefers-color-scheme: dark media block.
func hasNativeDarkMode(doc *html.Node) bool {
	for _, meta := range metaSelector.MatchAll(doc) {
		name := strings.ToLower(strings.TrimSpace(getAttr(meta, "name")))
		if name != "color-scheme" && name != "supported-color-schemes" {
			continue
		}
		if strings.Contains(strings.ToLower(getAttr(meta, "content")), "dark") {
			return true
		}
	}
	for _, block := range styleBlocks(doc) {
		if styleDeclaresDarkScheme(block) {
			return true
		}
	}
	return false
}

func styleDeclaresDarkScheme(txt string) bool {
	txt = stripCSSComments(txt)
	if prefersDarkRe.MatchString(txt) {
		return true
	}
	rules, ok := parseStyleBlock(txt)
	if !ok {
		return colorSchemeRe.MatchString(txt)
	}
	for _, r := range rules {
		for _, d := range r.declarations {
			switch d.property {
			case "color-scheme", "supported-color-schemes":
				for _, f := range strings.Fields(strings.ToLower(d.value)) {
					if f == "dark" {
						return true
					}
				}
			}
		}
	}
	return false
}
