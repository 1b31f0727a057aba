// Package dsl provides the zod-like vocabulary for building skema schemas.
//
// Overview
//   - Primitives: String(), Number(), Int(), Bool(), Null(), Undefined(), Any(), Date().
//   - Coercing primitives: CoerceNumber(), CoerceString(), CoerceBool(), CoerceDate().
//   - Values: Literal(v), Enum(values...), UUID().
//   - Containers: Object() builder, Record(key, value), Array(elem), Union(alts...), Lazy(fn).
//   - JSON(): the recursive schema of any JSON value.
//
// Every constructor returns a *skema.Schema, so the chaining methods of the
// root package (Optional, Default, Catch, Describe, Refine, Pipe, ...) apply.
// Composition order is significant: String().Optional().Default("x") and
// String().Default("x").Optional() are different nodes.
//
// Example (quickstart)
//
//	user := g.Object().
//	    Field("id", g.Int().Default(0)).
//	    Field("name", g.String().Default("default")).
//	    Field("email", g.String().Optional()).
//	    Strict().
//	    MustBuild()
//	r := skema.ParseFrom(ctx, user, skema.JSONBytes([]byte(`{}`)))
//	_ = r.Value // => map[string]any{"id": 0, "name": "default"}
//
// Example (Refine: cross-field validation)
//
//	obj := g.Object().
//	    Field("email", g.String()).
//	    Field("confirm", g.String()).
//	    Refine("email==confirm", func(ctx context.Context, m map[string]any) error {
//	        if m["email"] != m["confirm"] {
//	            return fmt.Errorf("confirm must match email")
//	        }
//	        return nil
//	    }).
//	    MustBuild()
//	_, err := skema.Parse(ctx, obj, map[string]any{"email": "a", "confirm": "b"})
//	_ = err // returned as Issues (code: "custom")
//
// Example (recursive tree)
//
//	var node *skema.Schema
//	node = g.Object().
//	    Field("value", g.Number()).
//	    Field("children", g.Lazy(func() *skema.Schema { return node }).Array().Optional()).
//	    MustBuild()
package dsl
