package darkcss

import "strings"

// Override records how a single color declaration was rewritten.
type Override struct {
	Selector string   `json:"selector"`
	Media    []string `json:"media,omitempty"`
	Property string   `json:"property"`
	Original string   `json:"original"`
	Dark     string   `json:"dark"`
	Role     string   `json:"role"`
	// Contrast is the WCAG ratio of the remapped color against the canonical
	// dark counterpart of the other role.
	Contrast float64 `json:"contrast"`
}

// Declaration returns the CSS declaration written to the stylesheet.
func (o Override) Declaration() string {
	return o.Property + ": " + o.Dark + " !important"
}

type overrideEntry struct {
	selector string
	media    []string
	decls    []string
	seen     map[string]struct{}
}

// OverrideStylesheet groups override declarations by selector. It belongs to
// one assembly pass and is discarded once serialized. Entries keep their
// first-insertion order; declarations within an entry form an ordered set.
type OverrideStylesheet struct {
	index   map[string]*overrideEntry
	entries []*overrideEntry
}

func newOverrideStylesheet() *OverrideStylesheet {
	return &OverrideStylesheet{index: make(map[string]*overrideEntry)}
}

// Add appends decl to the rule for selector inside the given conditions.
func (s *OverrideStylesheet) Add(selector string, media []string, decl string) {
	key := strings.Join(media, "\x00") + "\x00\x00" + selector
	e, ok := s.index[key]
	if !ok {
		e = &overrideEntry{selector: selector, media: media, seen: map[string]struct{}{}}
		s.index[key] = e
		s.entries = append(s.entries, e)
	}
	if _, dup := e.seen[decl]; dup {
		return
	}
	e.seen[decl] = struct{}{}
	e.decls = append(e.decls, decl)
}

// Len reports how many selectors carry at least one declaration.
func (s *OverrideStylesheet) Len() int {
	n := 0
	for _, e := range s.entries {
		if len(e.decls) > 0 {
			n++
		}
	}
	return n
}

// String serializes the sheet wrapped in the prefers-color-scheme: dark
// media block. An empty sheet serializes to "".
func (s *OverrideStylesheet) String() string {
	if s.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("@media (prefers-color-scheme: dark) { ")
	for _, e := range s.entries {
		if len(e.decls) == 0 {
			continue
		}
		for _, cond := range e.media {
			b.WriteString(cond)
			b.WriteString(" { ")
		}
		b.WriteString(e.selector)
		b.WriteString(" { ")
		b.WriteString(strings.Join(e.decls, "; "))
		b.WriteString(" }")
		for range e.media {
			b.WriteString(" }")
		}
	}
	b.WriteString(" }")
	return b.String()
}

// Assemble remaps every declaration of nodes and rules and returns the
// serialized override stylesheet.
func Assemble(nodes []ColorNode, rules []StyleBlockRule) string {
	sheet := newOverrideStylesheet()
	for _, o := range collectOverrides(nodes, rules) {
		sheet.Add(o.Selector, o.Media, o.Declaration())
	}
	return sheet.String()
}

// collectOverrides lists stylesheet rules first and element anchors second.
func collectOverrides(nodes []ColorNode, rules []StyleBlockRule) []Override {
	var out []Override
	for _, r := range rules {
		for _, d := range r.Declarations {
			if o, ok := remapDeclaration(r.Selector, r.Media, d); ok {
				out = append(out, o)
			}
		}
	}
	for _, n := range nodes {
		anchor := Anchor(n)
		if anchor == "" {
			continue
		}
		for _, d := range n.Declarations {
			if o, ok := remapDeclaration(anchor, nil, d); ok {
				out = append(out, o)
			}
		}
	}
	return out
}

func remapDeclaration(selector string, media []string, d Declaration) (Override, bool) {
	col, err := ParseColor(d.Token.Text)
	if err != nil {
		return Override{}, false
	}
	dark := Remap(col, d.Token.Role)
	contrast := ContrastRatio(dark, DarkBackground)
	if d.Token.Role == Background {
		contrast = ContrastRatio(DarkForeground, dark)
	}
	return Override{
		Selector: selector,
		Media:    media,
		Property: d.Property,
		Original: d.Token.Text,
		Dark:     dark.CSS(),
		Role:     d.Token.Role.String(),
		Contrast: contrast,
	}, true
}
