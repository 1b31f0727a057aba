// Package rules provides reusable checks for skema.CustomContext. A Rule runs
// on the validated output of the wrapped schema and reports Issues with paths
// relative to that value.
package rules

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	skema "github.com/reoring/skema"
)

// Rule is the signature accepted by skema.CustomContext.
type Rule = func(ctx context.Context, v any) error

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Min requires a number >= min.
func Min(min float64) Rule {
	return func(_ context.Context, v any) error {
		if f, ok := v.(float64); ok && f < min {
			return fail(nil, fmt.Sprintf("must be >= %v", min), "min", min, "got", f)
		}
		return nil
	}
}

// Max requires a number <= max.
func Max(max float64) Rule {
	return func(_ context.Context, v any) error {
		if f, ok := v.(float64); ok && f > max {
			return fail(nil, fmt.Sprintf("must be <= %v", max), "max", max, "got", f)
		}
		return nil
	}
}

// Integer requires a number without a fractional part.
func Integer() Rule {
	return func(_ context.Context, v any) error {
		if f, ok := v.(float64); ok && (math.Trunc(f) != f || math.IsInf(f, 0)) {
			return fail(nil, "expected integer", "got", f)
		}
		return nil
	}
}

// MinLength requires a string (in runes) or sequence of at least n elements.
func MinLength(n int) Rule {
	return func(_ context.Context, v any) error {
		if l, ok := length(v); ok && l < n {
			return fail(nil, fmt.Sprintf("length must be >= %d", n), "minLength", n, "got", l)
		}
		return nil
	}
}

// MaxLength requires a string (in runes) or sequence of at most n elements.
func MaxLength(n int) Rule {
	return func(_ context.Context, v any) error {
		if l, ok := length(v); ok && l > n {
			return fail(nil, fmt.Sprintf("length must be <= %d", n), "maxLength", n, "got", l)
		}
		return nil
	}
}

// NonEmpty is MinLength(1).
func NonEmpty() Rule { return MinLength(1) }

// StartsWith requires a string with the given prefix.
func StartsWith(prefix string) Rule {
	return func(_ context.Context, v any) error {
		if s, ok := v.(string); ok && !strings.HasPrefix(s, prefix) {
			return fail(nil, fmt.Sprintf("must start with %q", prefix), "prefix", prefix)
		}
		return nil
	}
}

// Pattern requires a string matching expr. It panics if expr does not compile.
func Pattern(expr string) Rule {
	re := regexp.MustCompile(expr)
	return func(_ context.Context, v any) error {
		if s, ok := v.(string); ok && !re.MatchString(s) {
			return fail(nil, "does not match pattern", "pattern", expr)
		}
		return nil
	}
}

// After requires a date strictly later than t.
func After(t time.Time) Rule {
	return func(_ context.Context, v any) error {
		if d, ok := v.(time.Time); ok && !d.After(t) {
			return fail(nil, "must be after "+t.Format(time.RFC3339), "after", t)
		}
		return nil
	}
}

// AtLeastOne ensures the sequence at collectionPath has at least 1 element.
// collectionPath is a JSON Pointer such as "/items"; "/" is the value itself.
func AtLeastOne(collectionPath string) Rule {
	p := normalizePath(collectionPath)
	return func(_ context.Context, v any) error {
		val, ok := valueAt(v, p)
		if !ok {
			return nil
		}
		if seq, ok := val.([]any); ok && len(seq) == 0 {
			return fail(pointerPath(p), "at least 1 item is required", "minItems", 1)
		}
		return nil
	}
}

// UniqueBy ensures elements of the sequence at collectionPath have unique
// values at keyPath (relative to each element, e.g. "sku"). Keys are compared
// by their text form.
func UniqueBy(collectionPath, keyPath string) Rule {
	cp := normalizePath(collectionPath)
	kp := strings.TrimPrefix(keyPath, "/")
	return func(ctx context.Context, v any) error {
		val, ok := valueAt(v, cp)
		if !ok {
			return nil
		}
		seq, ok := val.([]any)
		if !ok {
			return nil
		}
		seen := map[string]int{}
		var out skema.Issues
		for i, elem := range seq {
			kv, ok := valueAt(elem, "/"+kp)
			if !ok {
				continue
			}
			key := fmt.Sprint(kv)
			if j, dup := seen[key]; dup {
				p := pointerPath(cp).Index(i).Join(pointerPath("/" + kp))
				out = append(out, p.Issue(skema.CodeRefinementFailed, "duplicate value", "first", j, "dup", i, "key", key))
				if skema.IsFailFast(ctx) {
					return out
				}
			} else {
				seen[key] = i
			}
		}
		if len(out) > 0 {
			return out
		}
		return nil
	}
}

// Conditional composes conditional execution of rules.
type Conditional struct {
	path string
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates the value at a JSON Pointer path
// against want using op.
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	all := And(rules...)
	return func(ctx context.Context, v any) error {
		if !c.eval(v) {
			return nil
		}
		return all(ctx, v)
	}
}

func (c Conditional) eval(v any) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.eval(v) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.eval(v) {
				return true
			}
		}
		return false
	}
	cur, ok := valueAt(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// And executes all rules and concatenates their issues. Under fail-fast it
// stops at the first failing rule.
func And(rules ...Rule) Rule {
	return func(ctx context.Context, v any) error {
		var out skema.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			if err := r(ctx, v); err != nil {
				out = append(out, asIssues(err)...)
				if skema.IsFailFast(ctx) {
					return out
				}
			}
		}
		if len(out) > 0 {
			return out
		}
		return nil
	}
}

// Or succeeds if any rule succeeds. When all fail it returns the branch with
// the fewest issues.
func Or(rules ...Rule) Rule {
	return func(ctx context.Context, v any) error {
		var best skema.Issues
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			err := r(ctx, v)
			if err == nil {
				return nil
			}
			iss := asIssues(err)
			if !bestSet || len(iss) < len(best) {
				best, bestSet = iss, true
			}
		}
		if bestSet {
			return best
		}
		return nil
	}
}

// ------- helpers -------

func fail(p skema.Path, msg string, kv ...any) error {
	return skema.Issues{p.Issue(skema.CodeRefinementFailed, msg, kv...)}
}

func asIssues(err error) skema.Issues {
	if iss, ok := skema.AsIssues(err); ok {
		return iss
	}
	return skema.Issues{{Code: skema.CodeCustom, Message: err.Error()}}
}

func length(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []any:
		return len(t), true
	case map[string]any:
		return len(t), true
	}
	return 0, false
}

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func segments(pointer string) []string {
	rel := strings.TrimPrefix(pointer, "/")
	if rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = pointerUnescaper.Replace(p)
	}
	return parts
}

func pointerPath(pointer string) skema.Path {
	var p skema.Path
	for _, seg := range segments(pointer) {
		if n, err := strconv.Atoi(seg); err == nil && n >= 0 {
			p = p.Index(n)
		} else {
			p = p.Field(seg)
		}
	}
	return p
}

// valueAt navigates map[string]any and []any values by JSON Pointer.
func valueAt(v any, pointer string) (any, bool) {
	cur := v
	for _, seg := range segments(pointer) {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, false
			}
			cur = t[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return equal(cur, want)
	case Ne:
		return !equal(cur, want)
	}
	a, ok1 := number(cur)
	b, ok2 := number(want)
	if !ok1 || !ok2 {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// equal compares numbers by value so that If("/n", Eq, 1) matches 1.0.
func equal(a, b any) bool {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
