package codec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/codec"
)

var ctx = context.Background()

func TestToInt_InPipeReportsAtFieldPath(t *testing.T) {
	id := skema.Pipe(skema.Union(skema.Primitive(skema.KindString), skema.Primitive(skema.KindNumber)), codec.ToInt, nil)
	obj := skema.Object([]skema.Field{skema.F("id", id)}, skema.UnknownStrip)

	out, err := skema.Parse(ctx, obj, map[string]any{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(42)}, out)

	for _, in := range []any{"4.5", 7.9} {
		r := skema.Validate(ctx, obj, map[string]any{"id": in})
		require.Len(t, r.Issues, 1, "%v", in)
		assert.Equal(t, "id", r.Issues[0].Path.String())
		assert.Equal(t, "not coercible", r.Issues[0].Hint)
	}

	r := skema.Validate(ctx, obj, map[string]any{"id": "abc"})
	require.Len(t, r.Issues, 1)
	assert.Equal(t, skema.CodeInvalidType, r.Issues[0].Code)
	assert.Equal(t, "id", r.Issues[0].Path.String())
	assert.Equal(t, "integer", r.Issues[0].Expected)
}

func TestTrunc(t *testing.T) {
	s := skema.Transform(skema.Primitive(skema.KindNumber), codec.Trunc)
	out, err := skema.Parse(ctx, s, -7.9)
	require.NoError(t, err)
	assert.Equal(t, float64(-7), out)

	out, err = codec.Trunc("4.5")
	require.NoError(t, err)
	assert.Equal(t, float64(4), out)
}

func TestStringTransforms(t *testing.T) {
	s := skema.PipeStages(
		skema.Stage{Schema: skema.Primitive(skema.KindString), Transform: codec.Trim},
		skema.Stage{Transform: codec.Upper},
	)
	out, err := skema.Parse(ctx, s, "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)

	n, err := codec.Length("日本語")
	require.NoError(t, err)
	assert.Equal(t, float64(3), n)

	low, err := codec.Lower("ABC")
	require.NoError(t, err)
	assert.Equal(t, "abc", low)

	_, err = codec.Trim(1.0)
	iss, ok := skema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "number", iss[0].Received)
}

func TestToStringAndNumber(t *testing.T) {
	s, err := codec.ToString(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", s)

	b, err := codec.ToString(true)
	require.NoError(t, err)
	assert.Equal(t, "true", b)

	n, err := codec.ToNumber(" 2.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, n)

	_, err = codec.ToNumber(map[string]any{})
	assert.Error(t, err)
}

func TestTimeRFC3339_DecodeEncode(t *testing.T) {
	c := codec.TimeRFC3339()

	v, err := c.Decode(ctx, "2024-03-01T10:00:00+09:00")
	require.NoError(t, err)
	tm := v.(time.Time)
	assert.True(t, tm.Equal(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)))

	wire, err := c.Encode(ctx, tm)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T01:00:00Z", wire)

	_, err = c.Decode(ctx, "yesterday")
	iss, ok := skema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "rfc3339", iss[0].Hint)

	_, err = c.Encode(ctx, "not a time")
	assert.Error(t, err)
}

func TestTimeLayout(t *testing.T) {
	c := codec.TimeLayout("%Y-%m-%d")
	v, err := c.Decode(ctx, "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2024, v.(time.Time).Year())

	wire, err := c.Encode(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", wire)

	_, err = c.Decode(ctx, "31/12/2024")
	assert.Error(t, err)
}

func TestIdentity(t *testing.T) {
	c := codec.Identity(skema.Primitive(skema.KindNumber))
	v, err := c.Decode(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
	_, err = c.Encode(ctx, "x")
	assert.Error(t, err)
	assert.Same(t, c.In(), c.Out())
}
