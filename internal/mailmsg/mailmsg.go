// Package mailmsg turns raw RFC 5322 messages into darkcss render inputs.
package mailmsg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jhillyerd/enmime"

	"nightcss/darkcss"
)

// Message is the part of a parsed mail the dark-mode engine cares about.
type Message struct {
	Subject      string
	HTML         string
	IsPlainText  bool
	IsNewsletter bool
	// Warnings lists non-fatal MIME parsing problems.
	Warnings []string
}

// Load parses a MIME message. Messages without an HTML part are rendered as
// an escaped <pre> block and flagged as plain text.
func Load(r io.Reader) (*Message, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	msg := &Message{
		Subject:      env.GetHeader("Subject"),
		IsNewsletter: isNewsletter(env),
	}
	if strings.TrimSpace(env.HTML) != "" {
		msg.HTML = env.HTML
	} else {
		msg.IsPlainText = true
		msg.HTML = PlainTextHTML(env.Text)
	}
	for _, e := range env.Errors {
		msg.Warnings = append(msg.Warnings, e.Error())
	}
	return msg, nil
}

// isNewsletter reports bulk mail: list headers or a bulk/list precedence.
func isNewsletter(env *enmime.Envelope) bool {
	if env.GetHeader("List-Unsubscribe") != "" || env.GetHeader("List-Id") != "" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(env.GetHeader("Precedence"))) {
	case "bulk", "list":
		return true
	}
	return false
}

// PlainTextHTML wraps text in minimal markup so that it can be shown and
// repainted like any other body.
func PlainTextHTML(text string) string {
	var b strings.Builder
	b.WriteString("<html><head></head><body><pre style=\"white-space: pre-wrap\">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</pre></body></html>")
	return b.String()
}

// PlainTextBody prepares a body flagged as plain text by a caller. Bodies
// that already carry an <html> element are returned unchanged.
func PlainTextBody(body string) string {
	if strings.Contains(strings.ToLower(body), "<html") {
		return body
	}
	return PlainTextHTML(body)
}

// Input converts the message into a render request.
func (m *Message) Input(pref darkcss.Preference) darkcss.Input {
	return darkcss.Input{
		HTML:         m.HTML,
		IsNewsletter: m.IsNewsletter,
		IsPlainText:  m.IsPlainText,
		Preference:   pref,
	}
}
