// Package codec provides pipe transforms and bidirectional codecs between a
// wire schema (In) and a domain schema (Out).
package codec

import (
	"context"

	skema "github.com/reoring/skema"
)

// Codec converts values between a wire shape and a domain shape. Schema
// returns the decoding pipe In -> decode -> Out for use inside other schemas.
type Codec struct {
	in, out *skema.Schema
	decode  skema.TransformFunc
	encode  skema.TransformFunc
}

// New builds a Codec. A nil encode makes Encode an identity after validation.
func New(in, out *skema.Schema, decode, encode skema.TransformFunc) *Codec {
	return &Codec{in: in, out: out, decode: decode, encode: encode}
}

// Identity returns a Codec whose wire and domain schemas are both s.
func Identity(s *skema.Schema) *Codec { return New(s, s, nil, nil) }

func (c *Codec) In() *skema.Schema  { return c.in }
func (c *Codec) Out() *skema.Schema { return c.out }

// Schema returns the decoding pipe.
func (c *Codec) Schema() *skema.Schema { return skema.Pipe(c.in, c.decode, c.out) }

// Decode validates wire against In, converts it and validates the result
// against Out.
func (c *Codec) Decode(ctx context.Context, wire any, opts ...skema.ParseOpt) (any, error) {
	return skema.Parse(ctx, c.Schema(), wire, opts...)
}

// Encode validates domain against Out, converts it to the wire shape and
// re-validates it against In.
func (c *Codec) Encode(ctx context.Context, domain any, opts ...skema.ParseOpt) (any, error) {
	return skema.Parse(ctx, skema.Pipe(c.out, c.encode, c.in), domain, opts...)
}
