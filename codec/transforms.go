package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	skema "github.com/reoring/skema"
)

// ToNumber converts a decimal string or number to float64.
func ToNumber(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return nil, notCoercible("number", v)
		}
		return f, nil
	}
	return nil, notCoercible("number", v)
}

// ToInt converts a decimal string or number to float64, failing when the
// number has a fractional part.
func ToInt(v any) (any, error) {
	n, err := ToNumber(v)
	if err != nil {
		return nil, notCoercible("integer", v)
	}
	f := n.(float64)
	if math.IsInf(f, 0) || math.Trunc(f) != f {
		return nil, notCoercible("integer", v)
	}
	return f, nil
}

// Trunc converts a decimal string or number to float64, truncating toward zero.
func Trunc(v any) (any, error) {
	n, err := ToNumber(v)
	if err != nil {
		return nil, notCoercible("number", v)
	}
	return math.Trunc(n.(float64)), nil
}

// ToString renders strings, numbers and booleans as text.
func ToString(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return nil, notCoercible("string", v)
}

// Trim removes leading and trailing white space.
func Trim(v any) (any, error) { return mapString(v, strings.TrimSpace) }

// Upper converts a string to upper case.
func Upper(v any) (any, error) { return mapString(v, strings.ToUpper) }

// Lower converts a string to lower case.
func Lower(v any) (any, error) { return mapString(v, strings.ToLower) }

// Length returns the rune count of a string or the length of a sequence as a number.
func Length(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return float64(utf8.RuneCountInString(t)), nil
	case []any:
		return float64(len(t)), nil
	}
	return nil, invalidType("string", v)
}

func mapString(v any, fn func(string) string) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string", v)
	}
	return fn(s), nil
}

func invalidType(expected string, v any) error {
	got := skema.KindOf(v)
	return skema.Issues{{
		Code:     skema.CodeInvalidType,
		Message:  fmt.Sprintf("expected %s, received %s", expected, got),
		Expected: expected,
		Received: got,
	}}
}

func notCoercible(expected string, v any) error {
	iss := invalidType(expected, v).(skema.Issues)
	iss[0].Hint = "not coercible"
	return iss
}

func invalidFormat(format, msg string) error {
	return skema.Issues{{Code: skema.CodeInvalidType, Message: msg, Expected: "date", Received: "string", Hint: format}}
}
