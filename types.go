package skema

// UnknownPolicy controls how keys absent from an object's declared fields are handled.
// It applies only to the direct fields of the object it decorates.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Accept unknown keys and drop them from the output (default).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Accept unknown keys and copy them verbatim into the output.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strip"
	}
}

// Kind enumerates primitive value kinds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindUndefined
	KindAny  // anything except Undefined
	KindDate // time.Time
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindAny:
		return "any"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Strictness configures enforcement for duplicate keys while decoding sources.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DefaultMaxDepth bounds input nesting when ParseOpt.MaxDepth is zero.
const DefaultMaxDepth = 512

// ParseOpt bundles validation and decoding options.
type ParseOpt struct {
	// MaxDepth limits nesting of objects, records and arrays in the input.
	// Zero selects DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int
	// FailFast stops at the first issue instead of aggregating.
	FailFast bool
	// Strictness and MaxBytes apply when decoding a Source.
	Strictness Strictness
	MaxBytes   int64
}

func (o ParseOpt) maxDepth() int {
	switch {
	case o.MaxDepth == 0:
		return DefaultMaxDepth
	case o.MaxDepth < 0:
		return 0
	default:
		return o.MaxDepth
	}
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
