package dsl

import (
	"github.com/google/uuid"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/rules"
)

// String accepts strings.
func String() *skema.Schema { return skema.Primitive(skema.KindString) }

// Number accepts finite and infinite numbers (not NaN) and outputs float64.
func Number() *skema.Schema { return skema.Primitive(skema.KindNumber) }

// Int accepts numbers without a fractional part.
func Int() *skema.Schema { return skema.CustomContext(Number(), rules.Integer()) }

// Bool accepts booleans.
func Bool() *skema.Schema { return skema.Primitive(skema.KindBoolean) }

// Null accepts only null (nil).
func Null() *skema.Schema { return skema.Primitive(skema.KindNull) }

// Undefined accepts only an absent value.
func Undefined() *skema.Schema { return skema.Primitive(skema.KindUndefined) }

// Any accepts every present value, including null.
func Any() *skema.Schema { return skema.Primitive(skema.KindAny) }

// Date accepts time.Time values.
func Date() *skema.Schema { return skema.Primitive(skema.KindDate) }

// CoerceNumber converts strings, booleans, null and dates to numbers first.
func CoerceNumber() *skema.Schema { return skema.Coerce(skema.KindNumber) }

// CoerceString renders any value as a string first.
func CoerceString() *skema.Schema { return skema.Coerce(skema.KindString) }

// CoerceBool converts any value to its truthiness.
func CoerceBool() *skema.Schema { return skema.Coerce(skema.KindBoolean) }

// CoerceDate parses RFC3339 / YYYY-MM-DD strings and epoch milliseconds.
func CoerceDate() *skema.Schema { return skema.Coerce(skema.KindDate) }

// Literal accepts exactly v.
func Literal(v any) *skema.Schema { return skema.Literal(v) }

// Enum accepts one of values.
func Enum(values ...any) *skema.Schema { return skema.Enum(values...) }

// UUID accepts strings in any form google/uuid parses and outputs the
// canonical lower-case hyphenated form.
func UUID() *skema.Schema {
	checked := skema.Custom(String(), func(v any) error {
		if _, err := uuid.Parse(v.(string)); err != nil {
			return skema.Issues{{Code: skema.CodeRefinementFailed, Message: "invalid uuid", Hint: "uuid"}}
		}
		return nil
	})
	return skema.Transform(checked, func(v any) (any, error) {
		return uuid.MustParse(v.(string)).String(), nil
	})
}
