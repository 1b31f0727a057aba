package skema

import (
	"context"
	"sync/atomic"
)

// Tag identifies the variant of a Schema node.
type Tag int

const (
	TagPrimitive Tag = iota
	TagLiteral
	TagEnum
	TagObject
	TagRecord
	TagArray
	TagUnion
	TagOptional
	TagNullable
	TagDefault
	TagCatch
	TagLazy
	TagPipe
	TagRefine
	TagDescribe
)

var tagNames = [...]string{
	TagPrimitive: "primitive",
	TagLiteral:   "literal",
	TagEnum:      "enum",
	TagObject:    "object",
	TagRecord:    "record",
	TagArray:     "array",
	TagUnion:     "union",
	TagOptional:  "optional",
	TagNullable:  "nullable",
	TagDefault:   "default",
	TagCatch:     "catch",
	TagLazy:      "lazy",
	TagPipe:      "pipe",
	TagRefine:    "refine",
	TagDescribe:  "describe",
}

func (t Tag) String() string {
	if int(t) >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Schema is an immutable node of a schema graph. Combinators return new nodes
// and never modify their arguments, so a graph can be shared by concurrent
// validations. Cycles are only possible through Lazy nodes.
type Schema struct {
	tag Tag

	// primitive
	kind   Kind
	coerce bool

	// literal / enum
	values []any

	// object
	fields []Field
	index  map[string]int
	policy UnknownPolicy

	// record key; record value and array element use elem
	key  *Schema
	elem *Schema

	// union
	alts []*Schema

	// optional, nullable, default, catch, refine, describe
	inner *Schema

	// default / catch
	value     any
	defaultFn func() any
	catchFn   func(Issues) any

	// lazy
	lazy *lazyRef

	// pipe
	stages []Stage

	// refine
	pred     func(any) bool
	check    func(any) error
	ctxCheck func(context.Context, any) error
	message  string

	// describe
	desc string
}

// Field is a named object field.
type Field struct {
	Name   string
	Schema *Schema
}

// F is shorthand for Field{Name: name, Schema: s}.
func F(name string, s *Schema) Field { return Field{Name: name, Schema: s} }

// TransformFunc converts a validated value into the input of the next pipe
// stage. Returning Issues reports them at the current path; any other error
// becomes a custom issue.
type TransformFunc func(v any) (any, error)

// Stage is one (validate, transform) step of a pipe. A nil Transform passes the
// validated value through.
type Stage struct {
	Schema    *Schema
	Transform TransformFunc
}

type lazyRef struct {
	resolve func() *Schema
	node    atomic.Pointer[Schema]
}

// get resolves the node once per lazy instance; concurrent first calls may
// both run the resolver, which must therefore be idempotent.
func (l *lazyRef) get() *Schema {
	if n := l.node.Load(); n != nil {
		return n
	}
	n := l.resolve()
	if n == nil {
		return nil
	}
	l.node.CompareAndSwap(nil, n)
	return l.node.Load()
}

// ---- introspection ----

// Tag returns the node variant.
func (s *Schema) Tag() Tag { return s.tag }

// Kind returns the primitive kind. It is meaningful only for TagPrimitive.
func (s *Schema) Kind() Kind { return s.kind }

// Coerces reports whether a primitive converts compatible inputs.
func (s *Schema) Coerces() bool { return s.coerce }

// Fields returns a copy of the declared object fields in order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Field looks up a declared object field by name.
func (s *Schema) Field(name string) (*Schema, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Schema, true
}

// Policy returns the object's unknown-key policy.
func (s *Schema) Policy() UnknownPolicy { return s.policy }

// Inner returns the wrapped schema of wrapper nodes, the element of arrays
// and the value schema of records.
func (s *Schema) Inner() *Schema {
	switch s.tag {
	case TagArray, TagRecord:
		return s.elem
	case TagLazy:
		return s.lazy.get()
	}
	return s.inner
}

// KeySchema returns the key schema of a record.
func (s *Schema) KeySchema() *Schema { return s.key }

// Alternatives returns a copy of the union alternatives in order.
func (s *Schema) Alternatives() []*Schema { return append([]*Schema(nil), s.alts...) }

// Stages returns a copy of the pipe stages in order.
func (s *Schema) Stages() []Stage { return append([]Stage(nil), s.stages...) }

// Values returns the accepted values of literal and enum nodes.
func (s *Schema) Values() []any { return append([]any(nil), s.values...) }
