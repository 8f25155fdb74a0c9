// Package darkcss classifies HTML mail bodies for dark mode and generates
// the override stylesheet that repaints them.
//
// The engine never mutates the input document. Its output is a support level
// and, when the level is EngineSupported, a CSS text scoped to
// prefers-color-scheme: dark that the caller injects next to the original
// markup.
package darkcss

import (
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/net/html"
)

// DefaultMaxNestingDepth is the deepest body, counted from <body> inclusive,
// that is still considered safe to repaint.
const DefaultMaxNestingDepth = 15

// DefaultMaxTagDepth bounds the open-tag nesting scanned before the tree
// builder runs. The HTML5 tree builder slows down quadratically on deep
// nesting; deeper bodies are refused without parsing.
const DefaultMaxTagDepth = 1024

// ErrTooDeep is returned by the parse step for markup nested deeper than
// Options.MaxTagDepth.
var ErrTooDeep = errors.New("markup nested too deeply")

// Options tunes the structural-risk checks of the classifier.
type Options struct {
	// MaxNestingDepth: 0 means DefaultMaxNestingDepth, negative disables the check.
	MaxNestingDepth int
	// MaxTagDepth caps open-tag nesting before parsing: 0 means
	// DefaultMaxTagDepth, negative disables the scan.
	MaxTagDepth int
	// AllowTables turns off the table-layout check.
	AllowTables bool
	// Parse replaces the HTML parser; nil means ParseDocument.
	Parse ParseFunc
	// Cache is an optional read-through memo of Render results.
	Cache Cache
	// Logger receives debug lines; nil discards them.
	Logger *log.Logger
}

// Input is one render request.
type Input struct {
	HTML         string
	IsNewsletter bool
	IsPlainText  bool
	Preference   Preference
}

// Output is the verdict and, for EngineSupported, the override CSS.
type Output struct {
	SupportLevel SupportLevel
	OverrideCSS  string
}

// Engine runs the classify-and-rewrite pipeline. The zero value is usable and
// an Engine is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

func (e *Engine) options() Options {
	opts := e.opts
	if opts.MaxNestingDepth == 0 {
		opts.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if opts.MaxTagDepth == 0 {
		opts.MaxTagDepth = DefaultMaxTagDepth
	}
	if opts.Parse == nil {
		opts.Parse = ParseDocument
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return opts
}

// parse runs the depth scan and then the configured parser.
func (o Options) parse(src string) (*html.Node, error) {
	if o.MaxTagDepth > 0 && tagDepthExceeds(src, o.MaxTagDepth) {
		return nil, fmt.Errorf("%w: more than %d open tags", ErrTooDeep, o.MaxTagDepth)
	}
	return o.Parse(src)
}

// Classify returns the support level for a message body.
func (e *Engine) Classify(src string, isNewsletter, isPlainText bool, pref Preference) SupportLevel {
	level, _ := e.classify(Input{HTML: src, IsNewsletter: isNewsletter, IsPlainText: isPlainText, Preference: pref}, e.options())
	return level
}

// classify also hands back the parsed document when it had to parse one.
func (e *Engine) classify(in Input, opts Options) (SupportLevel, *html.Node) {
	if in.Preference == ForceOff {
		return NotSupported, nil
	}
	if in.IsPlainText {
		return EngineSupported, nil
	}
	if in.IsNewsletter {
		return NotSupported, nil
	}
	doc, err := opts.parse(in.HTML)
	if err != nil || doc == nil {
		opts.Logger.Printf("darkcss: parse failed, leaving message untouched: %v", err)
		return NotSupported, nil
	}
	return classifyDocument(doc, in.Preference, opts), doc
}

// Generate returns the override stylesheet for src without classifying it.
func (e *Engine) Generate(src string) string {
	opts := e.options()
	doc, err := opts.parse(src)
	if err != nil || doc == nil {
		return ""
	}
	return e.generate(doc, opts)
}

func (e *Engine) generate(doc *html.Node, opts Options) string {
	nodes, rules := extract(doc, opts.Logger)
	return Assemble(nodes, rules)
}

// Inspect lists every override Generate would write, with its provenance.
func (e *Engine) Inspect(src string) []Override {
	opts := e.options()
	doc, err := opts.parse(src)
	if err != nil || doc == nil {
		return nil
	}
	nodes, rules := extract(doc, opts.Logger)
	return collectOverrides(nodes, rules)
}

// Render classifies in and, on EngineSupported, generates the override CSS.
// It never panics and never returns CSS for any other support level.
func (e *Engine) Render(in Input) (out Output) {
	opts := e.options()
	var key CacheKey
	if opts.Cache != nil {
		key = KeyFor(in)
		if cached, ok := opts.Cache.Get(key); ok {
			return cached
		}
	}
	defer func() {
		if r := recover(); r != nil {
			opts.Logger.Printf("darkcss: recovered while rendering %d bytes: %v", len(in.HTML), r)
			out = Output{SupportLevel: NotSupported}
		}
	}()

	level, doc := e.classify(in, opts)
	out = Output{SupportLevel: level}
	if level == EngineSupported {
		if doc == nil {
			var err error
			doc, err = opts.parse(in.HTML)
			if err != nil {
				doc = nil
			}
		}
		if doc != nil {
			out.OverrideCSS = e.generate(doc, opts)
		}
	}
	if opts.Cache != nil {
		opts.Cache.Put(key, out)
	}
	return out
}
