package skema

import (
	"context"
)

// Result is the outcome of one validation: either a fresh output value or a
// non-empty list of issues in traversal order.
type Result struct {
	Value  any
	Issues Issues
	// Warnings holds non-fatal decoding issues (duplicate keys under Warn).
	Warnings Issues
}

// OK reports whether validation succeeded.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// Err returns the issues as an error, or nil on success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return r.Issues
}

// Validate checks v against s and returns the transformed output or every
// issue found. It never panics on invalid input and never modifies v.
func Validate(ctx context.Context, s *Schema, v any, opts ...ParseOpt) Result {
	return ValidateAt(ctx, s, v, nil, opts...)
}

// ValidateAt is like Validate but reports issue paths relative to base.
func ValidateAt(ctx context.Context, s *Schema, v any, base Path, opts ...ParseOpt) Result {
	if s == nil {
		return Result{Issues: singleIssue(CodeCustom, "nil schema")}
	}
	opt := lastOpt(opts)
	// propagate fail-fast intent via context, matching ParseFrom
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	e := &evaluator{ctx: ctx, failFast: IsFailFast(ctx), maxDepth: opt.maxDepth()}
	out, iss := e.eval(s, v, base)
	if iss != nil {
		return Result{Issues: iss}
	}
	return Result{Value: out}
}

// Parse is the error-returning entry point: it returns the output value, or
// Issues as the error.
func Parse(ctx context.Context, s *Schema, v any, opts ...ParseOpt) (any, error) {
	r := Validate(ctx, s, v, opts...)
	if !r.OK() {
		return nil, r.Issues
	}
	return r.Value, nil
}

// MustParse is like Parse but panics with the Issues on failure.
func MustParse(ctx context.Context, s *Schema, v any, opts ...ParseOpt) any {
	out, err := Parse(ctx, s, v, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

// SafeParse parses v, returning (nil, false) on validation error.
func SafeParse(ctx context.Context, s *Schema, v any, opts ...ParseOpt) (any, bool) {
	r := Validate(ctx, s, v, opts...)
	return r.Value, r.OK()
}

// Is returns true if v conforms to the schema s.
func Is(ctx context.Context, s *Schema, v any) bool { return Validate(ctx, s, v).OK() }

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast validation.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current validation should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
