// Package yaml decodes YAML documents with gopkg.in/yaml.v3 into the
// JSON-like value model of skema: map[string]any, []any, float64, string,
// bool, nil and time.Time for timestamps.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"time"

	yv3 "gopkg.in/yaml.v3"
)

// ErrTooDeep is returned when a document nests deeper than the limit.
var ErrTooDeep = errors.New("yaml: max depth exceeded")

// Decode reads the first document from r. maxDepth <= 0 disables the depth
// limit. An empty stream decodes to nil.
func Decode(r io.Reader, maxDepth int) (any, error) {
	var raw any
	if err := yv3.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return normalize(raw, 0, maxDepth)
}

// DecodeAll reads every document of a multi-document stream.
func DecodeAll(r io.Reader, maxDepth int) ([]any, error) {
	dec := yv3.NewDecoder(r)
	var out []any
	for {
		var raw any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := normalize(raw, 0, maxDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func normalize(v any, depth, maxDepth int) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if err := descend(depth, maxDepth); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := normalize(e, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		if err := descend(depth, maxDepth); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := normalize(e, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		if err := descend(depth, maxDepth); err != nil {
			return nil, err
		}
		out := make([]any, len(t))
		for i, e := range t {
			n, err := normalize(e, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64, string, bool, nil, time.Time:
		return t, nil
	default:
		return fmt.Sprint(t), nil
	}
}

func descend(depth, maxDepth int) error {
	if maxDepth > 0 && depth+1 > maxDepth {
		return ErrTooDeep
	}
	return nil
}
