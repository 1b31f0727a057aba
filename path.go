package skema

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object/record key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a key segment.
func Key(name string) Segment { return Segment{Key: name} }

// Index returns an index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is an ordered sequence of keys and indexes from the validated root.
// Paths are values; Field and Index never modify the receiver.
type Path []Segment

// PathOf builds a Path from strings and ints. Other element types are ignored.
func PathOf(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch t := e.(type) {
		case string:
			p = append(p, Key(t))
		case int:
			p = append(p, Index(t))
		}
	}
	return p
}

// Field returns a new path extended by an object key.
func (p Path) Field(name string) Path {
	return append(append(make(Path, 0, len(p)+1), p...), Key(name))
}

// Index returns a new path extended by an array index.
func (p Path) Index(i int) Path {
	return append(append(make(Path, 0, len(p)+1), p...), Index(i))
}

// Join returns a new path with q appended to p.
func (p Path) Join(q Path) Path {
	if len(q) == 0 {
		return p
	}
	return append(append(make(Path, 0, len(p)+len(q)), p...), q...)
}

// String renders the path in dotted form, e.g. children.1.children.0.value.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Pointer renders the path as an RFC 6901 JSON Pointer ("/" for the root).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.Key, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Issue creates an Issue at the path with a code, message and key/value params.
func (p Path) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
	}
	return Issue{Path: p, Code: code, Message: msg, Params: m}
}
