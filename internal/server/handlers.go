package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"nightcss/darkcss"
	"nightcss/internal/mailmsg"
)

// renderRequest is the body accepted by the /v1 endpoints. Either HTML or
// EML (a raw RFC 5322 message) must be set; EML determines the flags itself.
type renderRequest struct {
	HTML         string `json:"html"`
	EML          string `json:"eml,omitempty"`
	IsNewsletter bool   `json:"isNewsletter"`
	IsPlainText  bool   `json:"isPlainText"`
	Preference   string `json:"preference"`
	Inject       bool   `json:"inject,omitempty"`
	Width        int    `json:"width,omitempty"`
}

type renderResponse struct {
	SupportLevel string `json:"supportLevel"`
	OverrideCSS  string `json:"overrideCss"`
	HTML         string `json:"html,omitempty"`
}

type inspectResponse struct {
	SupportLevel string             `json:"supportLevel"`
	Overrides    []darkcss.Override `json:"overrides"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "pong\n")
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	req, in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	out := s.engine.Render(in)
	resp := renderResponse{SupportLevel: out.SupportLevel.String(), OverrideCSS: out.OverrideCSS}
	if req.Inject && out.OverrideCSS != "" {
		injected, err := darkcss.InjectStyle(in.HTML, out.OverrideCSS)
		if err != nil {
			s.logger.Printf("inject style: %v", err)
			writeError(w, http.StatusInternalServerError, "could not inject stylesheet")
			return
		}
		resp.HTML = injected
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	_, in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	out := s.engine.Render(in)
	resp := inspectResponse{SupportLevel: out.SupportLevel.String(), Overrides: []darkcss.Override{}}
	if out.SupportLevel == darkcss.EngineSupported {
		if list := s.engine.Inspect(in.HTML); list != nil {
			resp.Overrides = list
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Previewer == nil {
		writeError(w, http.StatusNotImplemented, "preview is not configured")
		return
	}
	req, in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	out := s.engine.Render(in)
	page := in.HTML
	if out.OverrideCSS != "" {
		injected, err := darkcss.InjectStyle(in.HTML, out.OverrideCSS)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not inject stylesheet")
			return
		}
		page = injected
	}
	width := req.Width
	if width <= 0 {
		width = s.cfg.PreviewWidth
	}
	png, err := s.cfg.Previewer.Screenshot(r.Context(), page, width)
	if err != nil {
		s.logger.Printf("preview: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("X-Support-Level", out.SupportLevel.String())
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// decodeInput reads a renderRequest and converts it into an engine input.
// On failure the error response has already been written.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (renderRequest, darkcss.Input, bool) {
	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooBig.Limit))
			return req, darkcss.Input{}, false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return req, darkcss.Input{}, false
	}
	pref := darkcss.ParsePreference(req.Preference)
	if strings.TrimSpace(req.EML) != "" {
		msg, err := mailmsg.Load(strings.NewReader(req.EML))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return req, darkcss.Input{}, false
		}
		return req, msg.Input(pref), true
	}
	if req.HTML == "" && !req.IsPlainText {
		writeError(w, http.StatusBadRequest, "missing html")
		return req, darkcss.Input{}, false
	}
	html := req.HTML
	if req.IsPlainText {
		html = mailmsg.PlainTextBody(html)
	}
	return req, darkcss.Input{
		HTML:         html,
		IsNewsletter: req.IsNewsletter,
		IsPlainText:  req.IsPlainText,
		Preference:   pref,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
