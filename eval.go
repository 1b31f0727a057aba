package skema

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/skema/i18n"
)

// maxLazyHops bounds lazy resolutions that do not descend into the input.
const maxLazyHops = 64

// maxDateMillis is the largest representable date offset from the epoch.
const maxDateMillis = 8.64e15

type frame struct {
	id    ident
	hasID bool
	hops  int
}

// evaluator holds the per-call traversal state. It is never shared between
// calls, so validation needs no locking.
type evaluator struct {
	ctx      context.Context
	failFast bool
	maxDepth int
	frames   []frame
	hops     int
}

func (e *evaluator) eval(s *Schema, v any, path Path) (any, Issues) {
	if s == nil {
		return nil, Issues{{Path: path, Code: CodeCustom, Message: "nil schema", Hint: "nil schema"}}
	}
	switch s.tag {
	case TagPrimitive:
		return e.primitive(s, v, path)
	case TagLiteral:
		return e.literal(s, v, path, CodeInvalidLiteral)
	case TagEnum:
		return e.literal(s, v, path, CodeInvalidEnum)
	case TagObject:
		return e.object(s, v, path)
	case TagRecord:
		return e.record(s, v, path)
	case TagArray:
		return e.array(s, v, path)
	case TagUnion:
		return e.union(s, v, path)
	case TagOptional:
		if IsUndefined(v) {
			return Undefined, nil
		}
		return e.eval(s.inner, v, path)
	case TagNullable:
		if v == nil {
			return nil, nil
		}
		return e.eval(s.inner, v, path)
	case TagDefault:
		if IsUndefined(v) {
			if s.defaultFn != nil {
				v = s.defaultFn()
			} else {
				v = s.value
			}
		}
		return e.eval(s.inner, v, path)
	case TagCatch:
		out, iss := e.eval(s.inner, v, path)
		if iss != nil {
			if s.catchFn != nil {
				return s.catchFn(iss), nil
			}
			return s.value, nil
		}
		return out, nil
	case TagLazy:
		return e.lazy(s, v, path)
	case TagPipe:
		return e.pipe(s, v, path)
	case TagRefine:
		return e.refine(s, v, path)
	case TagDescribe:
		return e.eval(s.inner, v, path)
	}
	return nil, Issues{{Path: path, Code: CodeCustom, Message: fmt.Sprintf("unsupported schema tag %d", s.tag)}}
}

func typeIssue(path Path, expected string, v any) Issues {
	received := KindOf(v)
	return Issues{{
		Path:     path,
		Code:     CodeInvalidType,
		Message:  i18n.T(CodeInvalidType, map[string]string{"expected": expected, "received": received}),
		Expected: expected,
		Received: received,
	}}
}

// enter records descent into a container. It fails when the depth limit is
// exceeded or v is one of its own ancestors.
func (e *evaluator) enter(v any, path Path) Issues {
	if e.maxDepth > 0 && len(e.frames) >= e.maxDepth {
		return Issues{{Path: path, Code: CodeTooDeep, Message: i18n.T(CodeTooDeep, nil), Params: map[string]any{"max": e.maxDepth}}}
	}
	id, hasID := identity(v)
	if hasID {
		for _, f := range e.frames {
			if f.hasID && f.id == id {
				return Issues{{Path: path, Code: CodeTooDeep, Message: i18n.T(CodeTooDeep, nil), Hint: "circular reference"}}
			}
		}
	}
	e.frames = append(e.frames, frame{id: id, hasID: hasID, hops: e.hops})
	e.hops = 0
	return nil
}

func (e *evaluator) leave() {
	n := len(e.frames) - 1
	e.hops = e.frames[n].hops
	e.frames = e.frames[:n]
}

// ---- primitives ----

func (e *evaluator) primitive(s *Schema, v any, path Path) (any, Issues) {
	in := v
	if s.coerce {
		cv, ok := coerce(s.kind, v)
		if !ok {
			iss := typeIssue(path, s.kind.String(), in)
			iss[0].Hint = "not coercible"
			return nil, iss
		}
		v = cv
	}
	switch s.kind {
	case KindString:
		if str, ok := v.(string); ok {
			return str, nil
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case KindNumber:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	case KindBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindNull:
		if v == nil {
			return nil, nil
		}
	case KindUndefined:
		if IsUndefined(v) {
			return Undefined, nil
		}
	case KindAny:
		if !IsUndefined(v) {
			return v, nil
		}
	case KindDate:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	}
	return nil, typeIssue(path, s.kind.String(), in)
}

// coerce converts v towards kind following the host scripting conventions
// (Number(x), String(x), Boolean(x), new Date(x)).
func coerce(kind Kind, v any) (any, bool) {
	switch kind {
	case KindNumber:
		switch t := v.(type) {
		case string:
			t = strings.TrimSpace(t)
			if t == "" {
				return float64(0), true
			}
			f, err := strconv.ParseFloat(t, 64)
			if err != nil || math.IsNaN(f) {
				return nil, false
			}
			return f, true
		case bool:
			if t {
				return float64(1), true
			}
			return float64(0), true
		case nil:
			return float64(0), true
		case time.Time:
			return float64(t.UnixMilli()), true
		}
		if f, ok := toFloat(v); ok {
			return f, true
		}
		return nil, false
	case KindString:
		switch t := v.(type) {
		case string:
			return t, true
		case nil:
			return "null", true
		case undefined:
			return "undefined", true
		case time.Time:
			return t.UTC().Format(time.RFC3339Nano), true
		}
		if f, ok := toFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return fmt.Sprint(v), true
	case KindBoolean:
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			return t != "", true
		case nil, undefined:
			return false, true
		case float64:
			return t != 0 && !math.IsNaN(t), true
		}
		if f, ok := toFloat(v); ok {
			return f != 0, true
		}
		return true, true
	case KindDate:
		switch t := v.(type) {
		case time.Time:
			return t, true
		case string:
			if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
				return ts, true
			}
			if ts, err := time.Parse(time.DateOnly, t); err == nil {
				return ts, true
			}
			return nil, false
		}
		if f, ok := toFloat(v); ok && math.Abs(f) <= maxDateMillis {
			return time.UnixMilli(int64(f)).UTC(), true
		}
		return nil, false
	}
	return v, true
}

func (e *evaluator) literal(s *Schema, v any, path Path, code string) (any, Issues) {
	for _, want := range s.values {
		if sameValue(want, v) {
			return want, nil
		}
	}
	opts := make([]string, len(s.values))
	for i, w := range s.values {
		opts[i] = fmt.Sprint(w)
	}
	return nil, Issues{{
		Path:     path,
		Code:     code,
		Message:  i18n.T(code, map[string]string{"expected": strings.Join(opts, " | ")}),
		Received: KindOf(v),
		Params:   map[string]any{"options": append([]any(nil), s.values...), "got": v},
	}}
}

func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// ---- containers ----

func (e *evaluator) object(s *Schema, v any, path Path) (any, Issues) {
	kv, ok := asKeyed(v)
	if !ok {
		return nil, typeIssue(path, "object", v)
	}
	if iss := e.enter(v, path); iss != nil {
		return nil, iss
	}
	defer e.leave()

	out := make(map[string]any, len(s.fields))
	var iss Issues
	for _, f := range s.fields {
		fv, present := kv.values[f.Name]
		if !present {
			fv = Undefined
		}
		r, fi := e.eval(f.Schema, fv, path.Field(f.Name))
		if fi != nil {
			iss = AppendIssues(iss, fi...)
			if e.failFast {
				return nil, iss
			}
			continue
		}
		if !IsUndefined(r) {
			out[f.Name] = r
		}
	}
	// unknown keys in key-sorted order
	for _, k := range kv.keys {
		if _, known := s.index[k]; known {
			continue
		}
		switch s.policy {
		case UnknownStrict:
			iss = AppendIssues(iss, Issue{Path: path.Field(k), Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, map[string]string{"key": k})})
			if e.failFast {
				return nil, iss
			}
		case UnknownPassthrough:
			out[k] = kv.values[k]
		case UnknownStrip:
			// drop
		}
	}
	if iss != nil {
		return nil, iss
	}
	return out, nil
}

func (e *evaluator) record(s *Schema, v any, path Path) (any, Issues) {
	kv, ok := asKeyed(v)
	if !ok {
		return nil, typeIssue(path, "object", v)
	}
	if iss := e.enter(v, path); iss != nil {
		return nil, iss
	}
	defer e.leave()

	out := make(map[string]any, len(kv.keys))
	var iss Issues
	for _, k := range kv.keys {
		kp := path.Field(k)
		rk, ki := e.eval(s.key, k, kp)
		if ki != nil {
			iss = AppendIssues(iss, ki...)
			if e.failFast {
				return nil, iss
			}
		}
		rv, vi := e.eval(s.elem, kv.values[k], kp)
		if vi != nil {
			iss = AppendIssues(iss, vi...)
			if e.failFast {
				return nil, iss
			}
		}
		if ki != nil || vi != nil || IsUndefined(rv) {
			continue
		}
		ks, ok := rk.(string)
		if !ok {
			ks = fmt.Sprint(rk)
		}
		out[ks] = rv
	}
	if iss != nil {
		return nil, iss
	}
	return out, nil
}

func (e *evaluator) array(s *Schema, v any, path Path) (any, Issues) {
	seq, ok := asSeq(v)
	if !ok {
		return nil, typeIssue(path, "array", v)
	}
	if iss := e.enter(v, path); iss != nil {
		return nil, iss
	}
	defer e.leave()

	out := make([]any, 0, len(seq))
	var iss Issues
	for i, ev := range seq {
		r, ei := e.eval(s.elem, ev, path.Index(i))
		if ei != nil {
			iss = AppendIssues(iss, ei...)
			if e.failFast {
				return nil, iss
			}
			continue
		}
		out = append(out, r)
	}
	if iss != nil {
		return nil, iss
	}
	return out, nil
}

func (e *evaluator) union(s *Schema, v any, path Path) (any, Issues) {
	alts := make([]Issues, 0, len(s.alts))
	for _, a := range s.alts {
		r, ai := e.eval(a, v, path)
		if ai == nil {
			return r, nil
		}
		alts = append(alts, ai)
	}
	return nil, Issues{{
		Path:         path,
		Code:         CodeInvalidUnion,
		Message:      i18n.T(CodeInvalidUnion, nil),
		Received:     KindOf(v),
		Alternatives: alts,
	}}
}

// ---- deferred, piped and refined ----

func (e *evaluator) lazy(s *Schema, v any, path Path) (any, Issues) {
	n := s.lazy.get()
	if n == nil {
		return nil, Issues{{Path: path, Code: CodeCustom, Message: i18n.T(CodeCustom, nil), Hint: "lazy resolver returned nil"}}
	}
	if e.hops >= maxLazyHops {
		return nil, Issues{{Path: path, Code: CodeTooDeep, Message: i18n.T(CodeTooDeep, nil), Hint: "lazy schema does not consume input"}}
	}
	e.hops++
	defer func() { e.hops-- }()
	return e.eval(n, v, path)
}

func (e *evaluator) pipe(s *Schema, v any, path Path) (any, Issues) {
	cur := v
	for _, st := range s.stages {
		if st.Schema != nil {
			r, iss := e.eval(st.Schema, cur, path)
			if iss != nil {
				return nil, iss
			}
			cur = r
		}
		if st.Transform != nil {
			r, err := st.Transform(cur)
			if err != nil {
				return nil, issuesFromErr(path, err)
			}
			cur = r
		}
	}
	return cur, nil
}

func (e *evaluator) refine(s *Schema, v any, path Path) (any, Issues) {
	out, iss := e.eval(s.inner, v, path)
	if iss != nil {
		return nil, iss
	}
	if s.pred != nil && !s.pred(out) {
		msg := s.message
		if msg == "" {
			msg = i18n.T(CodeRefinementFailed, nil)
		}
		return nil, Issues{{Path: path, Code: CodeRefinementFailed, Message: msg}}
	}
	if s.check != nil {
		if err := s.check(out); err != nil {
			return nil, issuesFromErr(path, err)
		}
	}
	if s.ctxCheck != nil {
		if err := s.ctxCheck(e.ctx, out); err != nil {
			return nil, issuesFromErr(path, err)
		}
	}
	return out, nil
}

// issuesFromErr converts a caller error into Issues at path. Issues keep their
// codes and are rebased under path; other errors become custom issues.
func issuesFromErr(path Path, err error) Issues {
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		return iss.rebase(path)
	}
	return Issues{{Path: path, Code: CodeCustom, Message: err.Error()}}
}
