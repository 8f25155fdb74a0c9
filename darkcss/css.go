package darkcss

import (
	"regexp"
	"strings"

	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

type cssDeclaration struct {
	property  string
	value     string
	important bool
}

// cssRule is one qualified rule lifted from a <style> block. media holds the
// enclosing conditional group rules, outermost first, e.g.
// "@media screen and (max-width: 600px)".
type cssRule struct {
	selector     string
	media        []string
	declarations []cssDeclaration
}

var cssCommentRe = regexp.MustCompile(`/\*[\s\S]*?\*/`)

func stripCSSComments(s string) string {
	return cssCommentRe.ReplaceAllString(s, "")
}

// parseInlineDeclarations reads a style attribute. Values that douceur
// rejects fall back to plain ';' and ':' splitting.
func parseInlineDeclarations(style string) []cssDeclaration {
	style = strings.TrimSpace(stripCSSComments(style))
	if style == "" {
		return nil
	}
	// douceur only records a value once it sees ';' or '}'
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if decls, err := parser.ParseDeclarations(style); err == nil {
		return convertDeclarations(decls)
	}
	return splitDeclarations(style)
}

func splitDeclarations(body string) []cssDeclaration {
	var out []cssDeclaration
	for _, part := range strings.Split(body, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])
		if prop == "" || value == "" {
			continue
		}
		important := false
		if strings.HasSuffix(strings.ToLower(value), "!important") {
			important = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		out = append(out, cssDeclaration{property: prop, value: value, important: important})
	}
	return out
}

func convertDeclarations(list []*cssast.Declaration) []cssDeclaration {
	if len(list) == 0 {
		return nil
	}
	out := make([]cssDeclaration, 0, len(list))
	for _, decl := range list {
		if decl == nil {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(decl.Property))
		if prop == "" {
			continue
		}
		val := strings.TrimSpace(decl.Value)
		if val == "" {
			continue
		}
		out = append(out, cssDeclaration{property: prop, value: val, important: decl.Important})
	}
	return out
}

// parseStyleBlock splits the text of one <style> element into rules.
// ok is false when douceur rejected the text and the naive splitter was used.
func parseStyleBlock(txt string) (rules []cssRule, ok bool) {
	trimmed := strings.TrimSpace(stripCSSComments(txt))
	if trimmed == "" {
		return nil, true
	}
	sheet, err := parser.Parse(trimmed)
	if err != nil {
		return splitStyleBlock(trimmed), false
	}
	var walk func(list []*cssast.Rule, media []string, depth int)
	walk = func(list []*cssast.Rule, media []string, depth int) {
		if depth > 8 {
			return
		}
		for _, rule := range list {
			if rule == nil {
				continue
			}
			switch rule.Kind {
			case cssast.QualifiedRule:
				sel := strings.TrimSpace(rule.Prelude)
				if sel == "" {
					continue
				}
				rules = append(rules, cssRule{
					selector:     sel,
					media:        media,
					declarations: convertDeclarations(rule.Declarations),
				})
			case cssast.AtRule:
				name := strings.ToLower(strings.TrimSpace(rule.Name))
				switch name {
				case "@media", "@supports":
					cond := name + " " + strings.TrimSpace(rule.Prelude)
					nested := append(append([]string(nil), media...), cond)
					walk(rule.Rules, nested, depth+1)
				}
			}
		}
	}
	walk(sheet.Rules, nil, 0)
	return rules, true
}

// splitStyleBlock is the last-resort splitter for text douceur cannot parse.
// Nested blocks are not understood; anything that is not "selector { body }"
// is skipped.
func splitStyleBlock(txt string) []cssRule {
	var out []cssRule
	for _, chunk := range strings.Split(txt, "}") {
		parts := strings.Split(chunk, "{")
		if len(parts) != 2 {
			continue
		}
		sel := strings.TrimSpace(parts[0])
		if sel == "" || strings.HasPrefix(sel, "@") {
			continue
		}
		out = append(out, cssRule{selector: sel, declarations: splitDeclarations(parts[1])})
	}
	return out
}
