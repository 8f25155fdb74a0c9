package darkcss

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleElementID marks the <style> element InjectStyle adds.
const StyleElementID = "nightcss-dark"

// InjectStyle returns src with css appended to <head> in its own <style>
// element. An empty css returns src unchanged. Any previously injected
// element is replaced so the call is idempotent.
func InjectStyle(src, css string) (string, error) {
	if css == "" {
		return src, nil
	}
	doc, err := ParseDocument(src)
	if err != nil {
		return "", fmt.Errorf("inject style: %w", err)
	}
	head := findFirstByTag(doc, "head")
	if head == nil {
		return "", fmt.Errorf("inject style: document has no head")
	}
	for c := head.FirstChild; c != nil; {
		next := c.NextSibling
		if isElement(c, "style") && getAttr(c, "id") == StyleElementID {
			head.RemoveChild(c)
		}
		c = next
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: "id", Val: StyleElementID}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendChild(style)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("inject style: %w", err)
	}
	return buf.String(), nil
}
