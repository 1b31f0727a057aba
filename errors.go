package skema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType      = "invalid_type"      // value's shape/type disagrees with the schema
	CodeUnknownKey       = "unknown_key"       // strict object saw an undeclared field
	CodeInvalidUnion     = "invalid_union"     // no union alternative validated
	CodeRefinementFailed = "refinement_failed" // refinement predicate returned false
	CodeCustom           = "custom"            // caller-supplied check failed
	CodeInvalidLiteral   = "invalid_literal"
	CodeInvalidEnum      = "invalid_enum"
	CodeTooDeep          = "too_deep"
	// Source decoding
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path     Path // Location of the offending value, root is the empty path.
	Code     string
	Message  string
	Expected string // Expected kind for invalid_type (for example: "number").
	Received string // Received kind for invalid_type (for example: "string").
	Hint     string // Optional: remediation hints, format names, etc.
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for i18n
	// and observability.
	Params map[string]any
	// Alternatives holds one issue set per union alternative, in declared order.
	Alternatives []Issues
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i := range iss {
		out[i] = iss[i].Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebase prefixes every issue path (including union alternatives) with base.
func (iss Issues) rebase(base Path) Issues {
	if len(base) == 0 || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = base.Join(it.Path)
		if len(it.Alternatives) > 0 {
			alts := make([]Issues, len(it.Alternatives))
			for j, a := range it.Alternatives {
				alts[j] = a.rebase(base)
			}
			it.Alternatives = alts
		}
		out[i] = it
	}
	return out
}

// Build-time configuration errors.
var (
	ErrNotObject    = errors.New("skema: schema is not an object schema")
	ErrUnknownField = errors.New("skema: unknown field")
	ErrNilSchema    = errors.New("skema: nil schema")
)

// ConfigError reports malformed schema construction. It is never produced
// during validation.
type ConfigError struct {
	Op    string // combinator name, e.g. "pick"
	Field string // offending field, when applicable
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %v %q", e.Op, e.Err, e.Field)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
