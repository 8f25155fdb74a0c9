package darkcss

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseFunc turns raw markup into a document tree. It must be lenient: any
// input yields a tree unless the reader itself fails.
type ParseFunc func(src string) (*html.Node, error)

// ParseDocument is the default ParseFunc, backed by the HTML5 tree builder.
func ParseDocument(src string) (*html.Node, error) {
	return html.Parse(strings.NewReader(src))
}

// tagDepthExceeds reports whether the open-tag nesting of src goes past
// limit. It only tokenizes, so it stays linear in the input. Void elements
// and elements whose end tag may be omitted are not counted.
func tagDepthExceeds(src string, limit int) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			name, _ := z.TagName()
			if flatElements[string(name)] {
				continue
			}
			depth++
			if depth > limit {
				return true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if !flatElements[string(name)] && depth > 0 {
				depth--
			}
		}
	}
}

var flatElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
	"p": true, "li": true, "dt": true, "dd": true, "tr": true, "td": true,
	"th": true, "option": true, "optgroup": true, "thead": true,
	"tbody": true, "tfoot": true, "colgroup": true, "rb": true, "rt": true,
	"rp": true, "rtc": true,
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, name)
}

// findFirstByTag performs DFS to find the first element with the given tag name.
func findFirstByTag(n *html.Node, name string) *html.Node {
	if n == nil {
		return nil
	}
	if isElement(n, name) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstByTag(c, name); found != nil {
			return found
		}
	}
	return nil
}

// walkElements visits every element below and including n in document order.
func walkElements(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

// maxDepth counts n itself plus its deepest chain of descendants, text nodes included.
func maxDepth(n *html.Node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if d := maxDepth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func classList(n *html.Node) []string {
	fields := strings.Fields(getAttr(n, "class"))
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func styleBlocks(doc *html.Node) []string {
	var out []string
	walkElements(doc, func(n *html.Node) {
		if isElement(n, "style") {
			out = append(out, textContent(n))
		}
	})
	return out
}
