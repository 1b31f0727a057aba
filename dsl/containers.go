package dsl

import skema "github.com/reoring/skema"

// Array accepts sequences whose elements all match elem.
func Array(elem *skema.Schema) *skema.Schema { return skema.Array(elem) }

// Record accepts keyed structures whose keys match key and values match value.
func Record(key, value *skema.Schema) *skema.Schema { return skema.Record(key, value) }

// Map is Record(String(), value).
func Map(value *skema.Schema) *skema.Schema { return skema.Record(String(), value) }

// Union accepts the first alternative that validates, in declared order.
func Union(alts ...*skema.Schema) *skema.Schema { return skema.Union(alts...) }

// Lazy defers schema construction for recursive definitions.
func Lazy(resolve func() *skema.Schema) *skema.Schema { return skema.Lazy(resolve) }

// JSON returns the schema of any JSON value: string, number, boolean, null,
// arrays of JSON values and string-keyed records of JSON values. Circular
// input is rejected by the depth limit.
func JSON() *skema.Schema {
	var value *skema.Schema
	value = skema.Lazy(func() *skema.Schema {
		return skema.Union(
			String(), Number(), Bool(), Null(),
			skema.Array(value),
			skema.Record(String(), value),
		)
	})
	return value
}
