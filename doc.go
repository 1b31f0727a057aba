// Package skema validates and transforms dynamically-typed values (decoded
// JSON, YAML or in-memory maps and slices) against declaratively composed
// schemas.
//
// A Schema is an immutable tree of nodes built with functional combinators
// (Object, Record, Array, Union, Optional, Default, Catch, Lazy, Pipe, Refine).
// Validation never panics on bad input and never modifies it: it returns a
// fresh output value or every Issue found, each with a Path from the root.
//
// Layout:
//
//   - dsl/ holds the zod-like vocabulary and the object builder.
//   - rules/ and codec/ hold reusable refinements and pipe transforms.
//   - source/ holds the JSON (go-json, encoding/json) and YAML decoders.
//
// Typical usage:
//
//	user := dsl.Object().
//		Field("id", dsl.Number().Default(0)).
//		Field("name", dsl.String().Default("default")).
//		MustBuild()
//	r := skema.Validate(ctx, user, map[string]any{})
//	r = skema.ParseFrom(ctx, user, skema.JSONBytes(data))
package skema
