package dsl

import (
	"context"
	"errors"

	skema "github.com/reoring/skema"
)

// ErrEmptyFieldName is returned by Build for a field registered with "".
var ErrEmptyFieldName = errors.New("dsl: empty field name")

type objectRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

type objectBuilder struct {
	fields  []skema.Field
	policy  skema.UnknownPolicy
	refines []objectRefine
	desc    string
}

type fieldStep struct {
	b   *objectBuilder
	idx int
}

// Object creates a new object builder. Unknown keys are stripped unless
// Strict or Passthrough is selected.
func Object() *objectBuilder {
	return &objectBuilder{policy: skema.UnknownStrip}
}

// Field registers a field in declaration order. Registering a name twice
// replaces the earlier schema and keeps its position.
func (b *objectBuilder) Field(name string, s *skema.Schema) *fieldStep {
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.fields[i].Schema = s
			return &fieldStep{b: b, idx: i}
		}
	}
	b.fields = append(b.fields, skema.F(name, s))
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

func (f *fieldStep) wrap(fn func(*skema.Schema) *skema.Schema) *objectBuilder {
	if s := f.b.fields[f.idx].Schema; s != nil {
		f.b.fields[f.idx].Schema = fn(s)
	}
	return f.b
}

// Optional makes the current field optional and returns the builder.
func (f *fieldStep) Optional() *objectBuilder { return f.wrap(skema.Optional) }

// Nullable lets the current field be null and returns the builder.
func (f *fieldStep) Nullable() *objectBuilder { return f.wrap(skema.Nullable) }

// Default substitutes v when the current field is absent.
func (f *fieldStep) Default(v any) *objectBuilder {
	return f.wrap(func(s *skema.Schema) *skema.Schema { return skema.Default(s, v) })
}

// Catch substitutes v whenever the current field fails.
func (f *fieldStep) Catch(v any) *objectBuilder {
	return f.wrap(func(s *skema.Schema) *skema.Schema { return skema.Catch(s, v) })
}

// Describe attaches a description to the current field.
func (f *fieldStep) Describe(text string) *objectBuilder {
	return f.wrap(func(s *skema.Schema) *skema.Schema { return skema.Describe(s, text) })
}

func (f *fieldStep) Field(name string, s *skema.Schema) *fieldStep { return f.b.Field(name, s) }
func (f *fieldStep) Strict() *objectBuilder                        { return f.b.Strict() }
func (f *fieldStep) Strip() *objectBuilder                         { return f.b.Strip() }
func (f *fieldStep) Passthrough() *objectBuilder                   { return f.b.Passthrough() }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Build() (*skema.Schema, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *skema.Schema      { return f.b.MustBuild() }

// Strict rejects unknown keys.
func (b *objectBuilder) Strict() *objectBuilder {
	b.policy = skema.UnknownStrict
	return b
}

// Strip drops unknown keys from the output.
func (b *objectBuilder) Strip() *objectBuilder {
	b.policy = skema.UnknownStrip
	return b
}

// Passthrough copies unknown keys into the output unchanged.
func (b *objectBuilder) Passthrough() *objectBuilder {
	b.policy = skema.UnknownPassthrough
	return b
}

// Describe attaches a description to the whole object.
func (b *objectBuilder) Describe(text string) *objectBuilder {
	b.desc = text
	return b
}

// Refine adds an object-level check run on the validated output, in
// registration order. A plain error becomes a custom issue at the object path.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objectRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns the object schema.
func (b *objectBuilder) Build() (*skema.Schema, error) {
	for _, f := range b.fields {
		if f.Name == "" {
			return nil, &skema.ConfigError{Op: "object", Err: ErrEmptyFieldName}
		}
		if f.Schema == nil {
			return nil, &skema.ConfigError{Op: "object", Field: f.Name, Err: skema.ErrNilSchema}
		}
	}
	s := skema.Object(b.fields, b.policy)
	for _, r := range b.refines {
		fn := r.fn
		s = skema.CustomContext(s, func(ctx context.Context, v any) error {
			m, _ := v.(map[string]any)
			return fn(ctx, m)
		})
	}
	if b.desc != "" {
		s = skema.Describe(s, b.desc)
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *skema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
