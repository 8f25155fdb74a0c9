package darkcss

import "testing"

func TestAnchor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"inline_with_class", `<div class="a" style="color: white">x</div>`, `div.a[style="color: white"]`},
		{"inline_no_class", `<span style="color: red">x</span>`, `span[style="color: red"]`},
		{"duplicate_classes", `<p class="x y x" style="color: red">x</p>`, `p.x.y[style="color: red"]`},
		{"legacy_attributes_sorted", `<div class="a" color="blue" bgcolor="transparent" font="sans">x</div>`,
			`div.a[bgcolor="transparent"][color="blue"][font="sans"]`},
		{"legacy_skips_id", `<font id="f1" color="red">x</font>`, `font[color="red"]`},
		{"quotes_escaped", `<span style='font-family:"A"; color: red'>x</span>`, `span[style="font-family:\"A\"; color: red"]`},
		{"newline_escaped", "<span style=\"color: red;\nfont-size: 1px\">x</span>", `span[style="color: red;\a font-size: 1px"]`},
		{"template_class_skipped", `<div class="a ${cls}" style="color: red">x</div>`, `div.a[style="color: red"]`},
		{"numeric_class_skipped", `<div class="1col" style="color: red">x</div>`, `div[style="color: red"]`},
		{"prefixed_tag", `<o:p style="color: red">x</o:p>`, `*[style="color: red"]`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			nodes, _ := mustParse(t, tc.html)
			if len(nodes) != 1 {
				t.Fatalf("expected 1 node, got %d", len(nodes))
			}
			if got := Anchor(nodes[0]); got != tc.expected {
				t.Fatalf("Anchor = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestAnchorWithoutUsableAttributes(t *testing.T) {
	t.Parallel()
	n := ColorNode{TagName: "div", Classes: []string{"a"}}
	if got := Anchor(n); got != "" {
		t.Fatalf("Anchor = %q, expected empty", got)
	}
}

func TestIsIdent(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"a":      true,
		"-a":     true,
		"_x1":    true,
		"héllo":  true,
		"":       false,
		"-":      false,
		"1a":     false,
		"-1":     false,
		"a.b":    false,
		"${x}":   false,
		"o:p":    false,
		"a-b_c9": true,
	}
	for in, want := range cases {
		if got := isIdent(in); got != want {
			t.Fatalf("isIdent(%q) = %v, want %v", in, got, want)
		}
	}
}
