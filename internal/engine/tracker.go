package engine

// KeyTracker classifies string tokens of delimiter-based JSON decoders
// (encoding/json, go-json) as object keys or string values.
type KeyTracker struct {
	stack []trackFrame
}

type trackFrame struct {
	object  bool
	wantKey bool
}

// Open records the start of an object or array.
func (t *KeyTracker) Open(object bool) {
	t.stack = append(t.stack, trackFrame{object: object, wantKey: object})
}

// Close records the end of the innermost container, which completes a value
// in its parent.
func (t *KeyTracker) Close() {
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
	}
	t.Value()
}

// String classifies a string token and advances the state.
func (t *KeyTracker) String() Kind {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.object && top.wantKey {
			top.wantKey = false
			return KindKey
		}
	}
	t.Value()
	return KindString
}

// Value records a completed value.
func (t *KeyTracker) Value() {
	if n := len(t.stack); n > 0 && t.stack[n-1].object {
		t.stack[n-1].wantKey = true
	}
}
