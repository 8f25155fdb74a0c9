package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakePreviewer struct {
	gotHTML  string
	gotWidth int
	err      error
}

func (f *fakePreviewer) Screenshot(_ context.Context, html string, width int) ([]byte, error) {
	f.gotHTML = html
	f.gotWidth = width
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG fake"), nil
}

func newTestServer(p Previewer) *Server {
	return New(Config{
		Logger:       log.New(io.Discard, "", 0),
		Previewer:    p,
		PreviewWidth: 480,
		MaxBodyBytes: 4096,
	})
}

func post(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong\n" {
		t.Fatalf("ping = %d %q", rec.Code, rec.Body.String())
	}
}

func TestDarkMode(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	tests := []struct {
		name  string
		body  renderRequest
		level string
		css   string
	}{
		{
			"engine",
			renderRequest{HTML: `<div class="a" style="color: white">x</div>`},
			"engine",
			`@media (prefers-color-scheme: dark) { div.a[style="color: white"] { color: hsla(0, 0%, 100%, 1.0) !important } }`,
		},
		{"forced_off", renderRequest{HTML: `<p style="color: red">x</p>`, Preference: "force-off"}, "unsupported", ""},
		{"newsletter", renderRequest{HTML: `<p style="color: red">x</p>`, IsNewsletter: true}, "unsupported", ""},
		{"native", renderRequest{HTML: `<meta name="color-scheme" content="light dark"><p>x</p>`}, "native", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := post(t, s, "/v1/darkmode", tc.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			var got renderResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			want := renderResponse{SupportLevel: tc.level, OverrideCSS: tc.css}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("response (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDarkModeInject(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := post(t, s, "/v1/darkmode", renderRequest{HTML: `<p style="color: red">x</p>`, Inject: true})
	var got renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(got.HTML, `<style id="nightcss-dark">`+got.OverrideCSS+`</style>`) {
		t.Fatalf("injected html missing style: %q", got.HTML)
	}
}

func TestDarkModeFromEML(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	eml := "From: a@example.com\r\nSubject: x\r\nMIME-Version: 1.0\r\nList-Id: <n.example.com>\r\nContent-Type: text/html\r\n\r\n<p style=\"color: red\">x</p>\r\n"
	rec := post(t, s, "/v1/darkmode", renderRequest{EML: eml})
	var got renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SupportLevel != "unsupported" {
		t.Fatalf("newsletter eml level = %s", got.SupportLevel)
	}
}

func TestBadRequests(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	cases := []struct {
		name string
		body string
		code int
	}{
		{"not_json", "<html>", http.StatusBadRequest},
		{"unknown_field", `{"markup":"x"}`, http.StatusBadRequest},
		{"missing_html", `{}`, http.StatusBadRequest},
		{"too_large", `{"html":"` + strings.Repeat("a", 5000) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := post(t, s, "/v1/darkmode", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.code, rec.Body.String())
			}
			var e errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e.Error == "" {
				t.Fatalf("error body %q", rec.Body.String())
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := post(t, s, "/v1/inspect", renderRequest{HTML: `<style>.a{color:#333}</style><p style="background-color: navy">x</p>`})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got inspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SupportLevel != "engine" || len(got.Overrides) != 2 || got.Overrides[0].Selector != ".a" {
		t.Fatalf("unexpected inspect response: %+v", got)
	}

	rec = post(t, s, "/v1/inspect", renderRequest{HTML: `<p style="color: red">x</p>`, IsNewsletter: true})
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Overrides == nil || len(got.Overrides) != 0 {
		t.Fatalf("unsupported message should report no overrides: %+v", got)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()
	fake := &fakePreviewer{}
	s := newTestServer(fake)
	rec := post(t, s, "/v1/preview", renderRequest{HTML: `<p style="color: red">x</p>`})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Support-Level") != "engine" {
		t.Fatalf("X-Support-Level = %q", rec.Header().Get("X-Support-Level"))
	}
	if fake.gotWidth != 480 || !strings.Contains(fake.gotHTML, "nightcss-dark") {
		t.Fatalf("previewer got width=%d html=%q", fake.gotWidth, fake.gotHTML)
	}

	failing := newTestServer(&fakePreviewer{err: errors.New("chrome gone")})
	if rec := post(t, failing, "/v1/preview", renderRequest{HTML: "<p>x</p>"}); rec.Code != http.StatusBadGateway {
		t.Fatalf("failing previewer status = %d", rec.Code)
	}
}

func TestPlainTextBodyIsWrapped(t *testing.T) {
	t.Parallel()
	fake := &fakePreviewer{}
	s := newTestServer(fake)
	rec := post(t, s, "/v1/preview", renderRequest{HTML: "1 < 2 & done", IsPlainText: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Support-Level") != "engine" {
		t.Fatalf("X-Support-Level = %q", rec.Header().Get("X-Support-Level"))
	}
	if !strings.Contains(fake.gotHTML, `<pre style="white-space: pre-wrap">1 &lt; 2 &amp; done</pre>`) {
		t.Fatalf("plain text not wrapped: %q", fake.gotHTML)
	}

	fake = &fakePreviewer{}
	s = newTestServer(fake)
	page := `<html><body><p>kept</p></body></html>`
	if rec := post(t, s, "/v1/preview", renderRequest{HTML: page, IsPlainText: true}); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(fake.gotHTML, "<pre") || !strings.Contains(fake.gotHTML, "<p>kept</p>") {
		t.Fatalf("existing markup rewrapped: %q", fake.gotHTML)
	}
}

func TestPreviewNotConfigured(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := post(t, s, "/v1/preview", renderRequest{HTML: "<p>x</p>"})
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}
