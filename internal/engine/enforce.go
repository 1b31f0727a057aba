package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Issue codes produced while decoding. They match the public skema codes.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	CodeTruncated    = "truncated"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
// Path holds the raw (unescaped) segments from the document root.
type SimpleIssue struct {
	Code    string
	Path    []string
	Message string
}

// Pointer renders the issue path as a JSON Pointer.
func (si SimpleIssue) Pointer() string {
	if len(si.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range si.Path {
		b.WriteByte('/')
		b.WriteString(jsonPointerEscaper.Replace(p))
	}
	return b.String()
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// Enabled reports whether any enforcement is configured.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0 || o.MaxBytes > 0
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes while tokens stream by.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type container struct {
	object  bool
	keys    map[string]struct{}
	segment string // segment of this container within its parent
	next    int    // next array index
	key     string // pending object key
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []container
}

func (e *enforcingTokenSource) path(extra ...string) []string {
	out := make([]string, 0, len(e.stack)+len(extra))
	for i := 1; i < len(e.stack); i++ {
		out = append(out, e.stack[i].segment)
	}
	return append(out, extra...)
}

// valueSegment returns the segment under which the next value is stored and
// advances the parent container.
func (e *enforcingTokenSource) valueSegment() string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	if top.object {
		return top.key
	}
	seg := strconv.Itoa(top.next)
	top.next++
	return seg
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		seg := e.valueSegment()
		c := container{object: tok.Kind == KindBeginObject, segment: seg}
		if c.object {
			c.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, c)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: CodeTooDeep, Path: e.path(), Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: CodeDuplicateKey, Path: e.path(tok.String), Message: "key '" + tok.String + "' duplicated"}
				if e.opt.OnDuplicate == DupError {
					return Token{}, IssueError{si}
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
		}
	default:
		e.valueSegment()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: CodeTruncated, Path: e.path(), Message: "max bytes exceeded"}}
		}
	}
	return tok, nil
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
