package skema

import (
	"bytes"
	"io"
	"sync"

	"github.com/tidwall/gjson"

	eng "github.com/reoring/skema/internal/engine"
	gojsonsrc "github.com/reoring/skema/source/gojson"
	yamlsrc "github.com/reoring/skema/source/yaml"
)

// Token and TokenSource describe the streaming token model consumed by
// ParseFrom. Custom JSON drivers produce them.
type (
	Token       = eng.Token
	TokenSource = eng.TokenSource
)

// Source produces one input document for ParseFrom.
type Source interface {
	// Format names the input format ("json", "yaml", "value").
	Format() string
	decode(opt ParseOpt, warn func(Issue)) (any, error)
}

// JSONDriver converts JSON input into a TokenSource via a pluggable SPI. The
// default implementation is backed by github.com/goccy/go-json and may be
// swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) TokenSource
	NewBytes(b []byte) TokenSource
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(defaultJSONDriver{}) }

// CurrentJSONDriver returns the driver used by JSONBytes and JSONReader.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	defer jsonDriverMu.RUnlock()
	return currentJSONDriver
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) TokenSource { return gojsonsrc.NewReader(r) }
func (defaultJSONDriver) NewBytes(b []byte) TokenSource     { return gojsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string                      { return "goccy/go-json" }

// tokenSource decodes a JSON document token by token with enforcement.
type tokenSource struct {
	open func() TokenSource
}

func (tokenSource) Format() string { return "json" }

func (t tokenSource) decode(opt ParseOpt, warn func(Issue)) (any, error) {
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.maxDepth(),
		MaxBytes:    opt.MaxBytes,
	}
	if warn != nil {
		eo.IssueSink = func(si eng.SimpleIssue) { warn(fromSimpleIssue(si)) }
	}
	return eng.DecodeTree(eng.WrapWithEnforcement(t.open(), eo))
}

// JSONBytes wraps a byte slice as a JSON Source using the current driver.
func JSONBytes(b []byte) Source {
	d := CurrentJSONDriver()
	return tokenSource{open: func() TokenSource { return d.NewBytes(b) }}
}

// JSONReader wraps an io.Reader as a JSON Source using the current driver.
// When MaxBytes is set the reader is consumed up to the limit before decoding.
func JSONReader(r io.Reader) Source { return readerSource{r: r, driver: CurrentJSONDriver()} }

type readerSource struct {
	r      io.Reader
	driver JSONDriver
}

func (readerSource) Format() string { return "json" }

func (s readerSource) decode(opt ParseOpt, warn func(Issue)) (any, error) {
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(s.r, opt.MaxBytes+1))
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, Issues{{Code: CodeTruncated, Message: "max bytes exceeded"}}
		}
		return tokenSource{open: func() TokenSource { return s.driver.NewBytes(data) }}.decode(opt, warn)
	}
	return tokenSource{open: func() TokenSource { return s.driver.NewReader(s.r) }}.decode(opt, warn)
}

// JSONSelect selects the sub-document at a gjson path (for example
// "data.items" or "users.#.name") and uses it as the Source. A path that
// matches nothing yields Undefined, so Optional and Default schemas apply.
func JSONSelect(data []byte, path string) Source { return selectSource{data: data, path: path} }

type selectSource struct {
	data []byte
	path string
}

func (selectSource) Format() string { return "json" }

func (s selectSource) decode(opt ParseOpt, warn func(Issue)) (any, error) {
	if !gjson.ValidBytes(s.data) {
		return nil, Issues{{Code: CodeParseError, Message: "invalid JSON document"}}
	}
	res := gjson.GetBytes(s.data, s.path)
	if !res.Exists() {
		return Undefined, nil
	}
	raw := []byte(res.Raw)
	return tokenSource{open: func() TokenSource { return CurrentJSONDriver().NewBytes(raw) }}.decode(opt, warn)
}

// YAMLBytes wraps a YAML document as a Source. Only the first document of a
// multi-document stream is read; use YAMLDocuments for all of them.
func YAMLBytes(b []byte) Source { return yamlSource{data: b} }

type yamlSource struct{ data []byte }

func (yamlSource) Format() string { return "yaml" }

func (s yamlSource) decode(opt ParseOpt, _ func(Issue)) (any, error) {
	if opt.MaxBytes > 0 && int64(len(s.data)) > opt.MaxBytes {
		return nil, Issues{{Code: CodeTruncated, Message: "max bytes exceeded"}}
	}
	return yamlsrc.Decode(bytes.NewReader(s.data), opt.maxDepth())
}

// YAMLDocuments splits a multi-document YAML stream into one Source per document.
func YAMLDocuments(b []byte) ([]Source, error) {
	docs, err := yamlsrc.DecodeAll(bytes.NewReader(b), DefaultMaxDepth)
	if err != nil {
		return nil, toIssues(err)
	}
	out := make([]Source, len(docs))
	for i, d := range docs {
		out[i] = Value(d)
	}
	return out, nil
}

// Value wraps an in-memory value as a Source.
func Value(v any) Source { return valueSource{v: v} }

type valueSource struct{ v any }

func (valueSource) Format() string { return "value" }

func (s valueSource) decode(ParseOpt, func(Issue)) (any, error) { return s.v, nil }

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func fromSimpleIssue(si eng.SimpleIssue) Issue {
	p := make(Path, len(si.Path))
	for i, seg := range si.Path {
		p[i] = Key(seg)
	}
	return Issue{Path: p, Code: si.Code, Message: si.Message}
}
