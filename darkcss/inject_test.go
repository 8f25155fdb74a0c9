package darkcss

import (
	"strings"
	"testing"
)

func TestInjectStyle(t *testing.T) {
	t.Parallel()
	src := `<html><head><title>t</title></head><body><p style="color: red">x</p></body></html>`
	css := NewEngine(Options{}).Generate(src)
	out, err := InjectStyle(src, css)
	if err != nil {
		t.Fatalf("InjectStyle: %v", err)
	}
	want := `<style id="nightcss-dark">` + css + `</style></head>`
	if !strings.Contains(out, want) {
		t.Fatalf("style not injected into head:\n%s", out)
	}
	if !strings.Contains(out, `<p style="color: red">x</p>`) {
		t.Fatalf("body altered:\n%s", out)
	}

	again, err := InjectStyle(out, css)
	if err != nil {
		t.Fatalf("InjectStyle twice: %v", err)
	}
	if n := strings.Count(again, StyleElementID); n != 1 {
		t.Fatalf("expected one injected element, found %d", n)
	}
}

func TestInjectStyleEmptyCSS(t *testing.T) {
	t.Parallel()
	src := "<p>untouched</p>"
	out, err := InjectStyle(src, "")
	if err != nil || out != src {
		t.Fatalf("InjectStyle(empty) = %q, %v", out, err)
	}
}
