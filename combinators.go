package skema

import (
	"context"
	"fmt"
)

// Primitive returns a schema accepting values of the given kind.
func Primitive(kind Kind) *Schema { return &Schema{tag: TagPrimitive, kind: kind} }

// Coerce returns a primitive schema that converts compatible inputs to kind
// before checking it (string "42" -> number 42, number 1 -> string "1", ...).
func Coerce(kind Kind) *Schema { return &Schema{tag: TagPrimitive, kind: kind, coerce: true} }

// Literal accepts exactly v.
func Literal(v any) *Schema { return &Schema{tag: TagLiteral, values: []any{v}} }

// Enum accepts any of values.
func Enum(values ...any) *Schema {
	return &Schema{tag: TagEnum, values: append([]any(nil), values...)}
}

// Object returns an object schema with ordered fields. Later fields with a
// duplicate name replace earlier ones in place.
func Object(fields []Field, policy UnknownPolicy) *Schema {
	return newObject(dedupFields(fields), policy)
}

func newObject(fields []Field, policy UnknownPolicy) *Schema {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &Schema{tag: TagObject, fields: fields, index: index, policy: policy}
}

func dedupFields(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	pos := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := pos[f.Name]; ok {
			out[i] = f
			continue
		}
		pos[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}

// Record returns a schema for keyed structures with uniformly typed values.
// Keys are validated in their textual form.
func Record(key, value *Schema) *Schema { return &Schema{tag: TagRecord, key: key, elem: value} }

// Array returns a schema for ordered sequences of elem.
func Array(elem *Schema) *Schema { return &Schema{tag: TagArray, elem: elem} }

// Union returns a schema accepting the first alternative that validates.
func Union(alts ...*Schema) *Schema {
	return &Schema{tag: TagUnion, alts: append([]*Schema(nil), alts...)}
}

// Optional accepts Undefined in addition to s.
func Optional(s *Schema) *Schema { return &Schema{tag: TagOptional, inner: s} }

// Nullable accepts null in addition to s.
func Nullable(s *Schema) *Schema { return &Schema{tag: TagNullable, inner: s} }

// Default substitutes v for Undefined input and validates it with s.
func Default(s *Schema, v any) *Schema { return &Schema{tag: TagDefault, inner: s, value: v} }

// DefaultFunc is like Default but computes the substitute on every use.
func DefaultFunc(s *Schema, fn func() any) *Schema {
	return &Schema{tag: TagDefault, inner: s, defaultFn: fn}
}

// Catch returns v whenever s fails. The fallback is not validated.
func Catch(s *Schema, v any) *Schema { return &Schema{tag: TagCatch, inner: s, value: v} }

// CatchFunc is like Catch but computes the fallback from the suppressed issues.
func CatchFunc(s *Schema, fn func(Issues) any) *Schema {
	return &Schema{tag: TagCatch, inner: s, catchFn: fn}
}

// Lazy defers schema construction to validation time so a definition can refer
// to itself. The resolver is called at most until it yields a non-nil node and
// must be free of side effects.
func Lazy(resolve func() *Schema) *Schema {
	return &Schema{tag: TagLazy, lazy: &lazyRef{resolve: resolve}}
}

// Pipe validates with s, applies transform, then validates the result with
// next. A nil transform passes the value through and a nil next ends the pipe.
func Pipe(s *Schema, transform TransformFunc, next *Schema) *Schema {
	stages := []Stage{{Schema: s, Transform: transform}}
	if next != nil {
		stages = append(stages, Stage{Schema: next})
	}
	return &Schema{tag: TagPipe, stages: stages}
}

// PipeStages builds a pipe from explicit stages.
func PipeStages(stages ...Stage) *Schema {
	return &Schema{tag: TagPipe, stages: append([]Stage(nil), stages...)}
}

// Transform validates with s and returns fn applied to the result.
func Transform(s *Schema, fn TransformFunc) *Schema { return Pipe(s, fn, nil) }

// Refine validates with s, then reports message when pred rejects the result.
func Refine(s *Schema, pred func(any) bool, message string) *Schema {
	return &Schema{tag: TagRefine, inner: s, pred: pred, message: message}
}

// Custom validates with s, then runs check on the result. A returned Issues is
// rebased under the current path; any other error becomes a custom issue.
func Custom(s *Schema, check func(any) error) *Schema {
	return &Schema{tag: TagRefine, inner: s, check: check}
}

// CustomContext is like Custom but check receives the validation context,
// which carries services registered with WithService.
func CustomContext(s *Schema, check func(ctx context.Context, v any) error) *Schema {
	return &Schema{tag: TagRefine, inner: s, ctxCheck: check}
}

// Describe attaches a description. It has no effect on validation.
func Describe(s *Schema, text string) *Schema { return &Schema{tag: TagDescribe, inner: s, desc: text} }

// ---- structural object combinators ----

// objectOf unwraps Describe nodes to reach an object schema.
func objectOf(op string, s *Schema) (*Schema, error) {
	if s == nil {
		return nil, &ConfigError{Op: op, Err: ErrNilSchema}
	}
	for s.tag == TagDescribe {
		s = s.inner
	}
	if s.tag != TagObject {
		return nil, &ConfigError{Op: op, Err: fmt.Errorf("%w (got %s)", ErrNotObject, s.tag)}
	}
	return s, nil
}

func selectFields(op string, s *Schema, keys []string, keep bool) (*Schema, error) {
	obj, err := objectOf(op, s)
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := obj.Field(k); !ok {
			return nil, &ConfigError{Op: op, Field: k, Err: ErrUnknownField}
		}
		want[k] = struct{}{}
	}
	fields := make([]Field, 0, len(obj.fields))
	for _, f := range obj.fields {
		if _, ok := want[f.Name]; ok == keep {
			fields = append(fields, f)
		}
	}
	return newObject(fields, obj.policy), nil
}

// Pick returns a new object schema with only the named fields.
func Pick(s *Schema, keys ...string) (*Schema, error) { return selectFields("pick", s, keys, true) }

// Omit returns a new object schema without the named fields.
func Omit(s *Schema, keys ...string) (*Schema, error) { return selectFields("omit", s, keys, false) }

// Partial returns a new object schema whose fields (or only the named ones) accept Undefined.
func Partial(s *Schema, keys ...string) (*Schema, error) {
	return mapFields("partial", s, keys, func(f *Schema) *Schema {
		if f.tag == TagOptional {
			return f
		}
		return Optional(f)
	})
}

// Required returns a new object schema with the outer Optional wrapper removed
// from every field (or only the named ones).
func Required(s *Schema, keys ...string) (*Schema, error) {
	return mapFields("required", s, keys, func(f *Schema) *Schema {
		for f.tag == TagOptional {
			f = f.inner
		}
		return f
	})
}

func mapFields(op string, s *Schema, keys []string, fn func(*Schema) *Schema) (*Schema, error) {
	obj, err := objectOf(op, s)
	if err != nil {
		return nil, err
	}
	only := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := obj.Field(k); !ok {
			return nil, &ConfigError{Op: op, Field: k, Err: ErrUnknownField}
		}
		only[k] = struct{}{}
	}
	fields := make([]Field, len(obj.fields))
	for i, f := range obj.fields {
		if _, ok := only[f.Name]; len(only) == 0 || ok {
			f.Schema = fn(f.Schema)
		}
		fields[i] = f
	}
	return newObject(fields, obj.policy), nil
}

// Extend returns a new object schema with fields added or replaced.
func Extend(s *Schema, fields ...Field) (*Schema, error) {
	obj, err := objectOf("extend", s)
	if err != nil {
		return nil, err
	}
	all := append(append([]Field(nil), obj.fields...), fields...)
	return newObject(dedupFields(all), obj.policy), nil
}

// Merge returns a new object schema with b's fields over a's, using b's policy.
func Merge(a, b *Schema) (*Schema, error) {
	ob, err := objectOf("merge", b)
	if err != nil {
		return nil, err
	}
	m, err := Extend(a, ob.fields...)
	if err != nil {
		return nil, err
	}
	return newObject(m.fields, ob.policy), nil
}

// WithPolicy returns a copy of an object schema with a different unknown-key policy.
func WithPolicy(s *Schema, policy UnknownPolicy) (*Schema, error) {
	obj, err := objectOf("policy", s)
	if err != nil {
		return nil, err
	}
	return newObject(obj.fields, policy), nil
}

// Must panics when err is non-nil. It wraps build-time combinators.
func Must(s *Schema, err error) *Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// ---- chaining ----

// Optional is the chaining form of Optional(s).
func (s *Schema) Optional() *Schema { return Optional(s) }

// Nullable is the chaining form of Nullable(s).
func (s *Schema) Nullable() *Schema { return Nullable(s) }

// Nullish accepts both Undefined and null.
func (s *Schema) Nullish() *Schema { return Optional(Nullable(s)) }

// Default is the chaining form of Default(s, v).
func (s *Schema) Default(v any) *Schema { return Default(s, v) }

// Catch is the chaining form of Catch(s, v).
func (s *Schema) Catch(v any) *Schema { return Catch(s, v) }

// Describe is the chaining form of Describe(s, text).
func (s *Schema) Describe(text string) *Schema { return Describe(s, text) }

// Refine is the chaining form of Refine(s, pred, message).
func (s *Schema) Refine(pred func(any) bool, message string) *Schema {
	return Refine(s, pred, message)
}

// Check is the chaining form of Custom(s, check).
func (s *Schema) Check(check func(any) error) *Schema { return Custom(s, check) }

// CheckContext is the chaining form of CustomContext(s, check).
func (s *Schema) CheckContext(check func(ctx context.Context, v any) error) *Schema {
	return CustomContext(s, check)
}

// Transform is the chaining form of Transform(s, fn).
func (s *Schema) Transform(fn TransformFunc) *Schema { return Transform(s, fn) }

// Pipe feeds the output of s into next.
func (s *Schema) Pipe(next *Schema) *Schema { return Pipe(s, nil, next) }

// Array is the chaining form of Array(s).
func (s *Schema) Array() *Schema { return Array(s) }

// Or returns Union(s, others...).
func (s *Schema) Or(others ...*Schema) *Schema { return Union(append([]*Schema{s}, others...)...) }
