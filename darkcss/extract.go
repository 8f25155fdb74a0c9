package darkcss

import (
	"log"
	"strings"

	"golang.org/x/net/html"
)

// RawColorToken is a color literal exactly as found in the markup, together
// with where it came from and the role its property gives it.
type RawColorToken struct {
	Text     string
	Property string
	Role     ColorRole
	// Origin is "style", "attr" or "sheet".
	Origin string
}

// Declaration pairs the property an override will be written to with the
// token that produced it.
type Declaration struct {
	Property string
	Token    RawColorToken
}

// ColorNode is one element carrying at least one color, either in its style
// attribute (Inline) or in legacy presentation attributes.
type ColorNode struct {
	Node         *html.Node
	TagName      string
	Classes      []string
	Attributes   []html.Attribute
	Declarations []Declaration
	Inline       bool
}

// Style returns the verbatim style attribute.
func (n ColorNode) Style() string {
	for _, a := range n.Attributes {
		if strings.EqualFold(a.Key, "style") {
			return a.Val
		}
	}
	return ""
}

// StyleBlockRule is one rule from an embedded stylesheet. Selector is kept
// verbatim; Media lists the enclosing @media/@supports conditions.
type StyleBlockRule struct {
	Selector     string
	Media        []string
	Declarations []Declaration
}

// Extract walks doc in document order and collects every element and
// stylesheet rule that carries a parseable color.
func Extract(doc *html.Node) ([]ColorNode, []StyleBlockRule) {
	return extract(doc, nil)
}

func extract(doc *html.Node, logger *log.Logger) ([]ColorNode, []StyleBlockRule) {
	var nodes []ColorNode
	var rules []StyleBlockRule
	walkElements(doc, func(n *html.Node) {
		if isElement(n, "style") {
			rules = append(rules, extractStyleBlock(textContent(n), logger)...)
			return
		}
		if cn, ok := extractNode(n); ok {
			nodes = append(nodes, cn)
		}
	})
	return nodes, rules
}

func extractNode(n *html.Node) (ColorNode, bool) {
	var decls []Declaration
	inline := false
	if style := getAttr(n, "style"); strings.TrimSpace(style) != "" {
		decls = colorDeclarations(parseInlineDeclarations(style), "style")
		inline = len(decls) > 0
	}
	if !inline {
		decls = legacyDeclarations(n)
	}
	if len(decls) == 0 {
		return ColorNode{}, false
	}
	attrs := make([]html.Attribute, len(n.Attr))
	copy(attrs, n.Attr)
	return ColorNode{
		Node:         n,
		TagName:      strings.ToLower(n.Data),
		Classes:      classList(n),
		Attributes:   attrs,
		Declarations: decls,
		Inline:       inline,
	}, true
}

var legacyAttributes = [...]struct{ name, property string }{
	{"bgcolor", "background-color"},
	{"color", "color"},
	{"text", "color"},
}

func isLegacyAttribute(property string) bool {
	return property == "bgcolor" || property == "text"
}

// legacyDeclarations synthesizes declarations from bgcolor and color
// attributes, plus the text attribute of <body>.
func legacyDeclarations(n *html.Node) []Declaration {
	var out []Declaration
	for _, attr := range legacyAttributes {
		if !hasAttr(n, attr.name) {
			continue
		}
		if attr.name == "text" && !isElement(n, "body") {
			continue
		}
		if attr.name == "text" && hasAttr(n, "color") {
			continue
		}
		value := getAttr(n, attr.name)
		if !IsColor(value) {
			continue
		}
		role, _ := RoleForProperty(attr.name)
		out = append(out, Declaration{
			Property: attr.property,
			Token:    RawColorToken{Text: value, Property: attr.name, Role: role, Origin: "attr"},
		})
	}
	return out
}

// colorDeclarations keeps the declarations whose property carries a role
// and whose value parses. The background and border shorthands only count
// when their whole value is a color, and are rewritten to their longhand.
func colorDeclarations(list []cssDeclaration, origin string) []Declaration {
	var out []Declaration
	for _, d := range list {
		role, ok := RoleForProperty(d.property)
		if !ok || isLegacyAttribute(d.property) {
			continue
		}
		if !IsColor(d.value) {
			continue
		}
		out = append(out, Declaration{
			Property: longhandFor(d.property),
			Token:    RawColorToken{Text: d.value, Property: d.property, Role: role, Origin: origin},
		})
	}
	return out
}

func extractStyleBlock(txt string, logger *log.Logger) []StyleBlockRule {
	parsed, ok := parseStyleBlock(txt)
	if !ok && logger != nil {
		logger.Printf("darkcss: style block rejected by css parser, using fallback split (%d bytes)", len(txt))
	}
	var out []StyleBlockRule
	for _, r := range parsed {
		decls := colorDeclarations(r.declarations, "sheet")
		if len(decls) == 0 {
			continue
		}
		out = append(out, StyleBlockRule{Selector: r.selector, Media: r.media, Declarations: decls})
	}
	return out
}
