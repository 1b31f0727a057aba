package codec

import (
	"time"

	"github.com/itchyny/timefmt-go"

	skema "github.com/reoring/skema"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() *Codec {
	return New(skema.Primitive(skema.KindString), skema.Primitive(skema.KindDate), RFC3339, FormatRFC3339)
}

// TimeLayout returns a Codec between strings in a strftime layout and time.Time.
func TimeLayout(layout string) *Codec {
	return New(skema.Primitive(skema.KindString), skema.Primitive(skema.KindDate), Date(layout), FormatDate(layout))
}

// RFC3339 parses a string as an RFC3339 timestamp (fractional seconds optional).
func RFC3339(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string", v)
	}
	t, err := parseRFC3339(s)
	if err != nil {
		return nil, invalidFormat("rfc3339", "invalid RFC3339 time")
	}
	return t, nil
}

// FormatRFC3339 renders a time.Time in canonical UTC RFC3339 form.
func FormatRFC3339(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, invalidType("date", v)
	}
	return formatRFC3339Canonical(t), nil
}

// Date parses a string with a strftime layout such as "%Y-%m-%d".
func Date(layout string) skema.TransformFunc {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, invalidType("string", v)
		}
		t, err := timefmt.Parse(s, layout)
		if err != nil {
			return nil, invalidFormat(layout, "invalid date, expected "+layout)
		}
		return t, nil
	}
}

// FormatDate renders a time.Time with a strftime layout.
func FormatDate(layout string) skema.TransformFunc {
	return func(v any) (any, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, invalidType("date", v)
		}
		return timefmt.Format(t, layout), nil
	}
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Go trims trailing zeros with RFC3339Nano
	return t.UTC().Format(time.RFC3339Nano)
}
