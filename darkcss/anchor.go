package darkcss

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Anchor synthesizes a selector that re-targets n. Inline-styled nodes are
// pinned by their exact style attribute; attribute-only nodes by their other
// presentational attributes. An empty result means no standalone rule should
// be written for n.
func Anchor(n ColorNode) string {
	var anchor string
	if n.Inline {
		anchor = inlineAnchor(n)
	} else {
		anchor = attributeAnchor(n)
	}
	if anchor == "" {
		return ""
	}
	if !anchorMatches(anchor, n) {
		return ""
	}
	return anchor
}

func inlineAnchor(n ColorNode) string {
	var b strings.Builder
	writeTagAndClasses(&b, n)
	writeAttrSelector(&b, "style", n.Style())
	return b.String()
}

func attributeAnchor(n ColorNode) string {
	attrs := make([]string, 0, len(n.Attributes))
	values := make(map[string]string, len(n.Attributes))
	for _, a := range n.Attributes {
		key := strings.ToLower(a.Key)
		switch key {
		case "style", "class", "id":
			continue
		}
		if a.Namespace != "" || !isIdent(key) {
			continue
		}
		if _, dup := values[key]; dup {
			continue
		}
		values[key] = a.Val
		attrs = append(attrs, key)
	}
	if len(attrs) == 0 {
		return ""
	}
	sort.Strings(attrs)
	var b strings.Builder
	writeTagAndClasses(&b, n)
	for _, key := range attrs {
		writeAttrSelector(&b, key, values[key])
	}
	return b.String()
}

func writeTagAndClasses(b *strings.Builder, n ColorNode) {
	// Outlook emits prefixed tags such as <o:p> which no selector can name
	if isIdent(n.TagName) {
		b.WriteString(n.TagName)
	} else {
		b.WriteByte('*')
	}
	for _, c := range n.Classes {
		// class="${cond ? a : b}" and similar template leftovers cannot be
		// written as a class selector
		if !isIdent(c) {
			continue
		}
		b.WriteByte('.')
		b.WriteString(c)
	}
}

func writeAttrSelector(b *strings.Builder, key, value string) {
	b.WriteByte('[')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(escapeCSSString(value))
	b.WriteString(`"]`)
}

// escapeCSSString escapes a value for use inside a double-quoted CSS string.
func escapeCSSString(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\f") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '\f':
			b.WriteString(`\c `)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isIdent reports whether s can be written unescaped as a CSS identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r >= 0x80:
		case r == '-':
			if i == 0 && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
				return false
			}
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != "-"
}

// anchorMatches compiles the anchor and checks that it selects its own node.
func anchorMatches(anchor string, n ColorNode) bool {
	sel, err := cascadia.Compile(anchor)
	if err != nil {
		return false
	}
	if n.Node == nil {
		return true
	}
	return sel.Match(n.Node)
}
