package skema_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
	jsonsrc "github.com/reoring/skema/source/json"
)

type stdDriver struct{}

func (stdDriver) NewReader(r io.Reader) skema.TokenSource { return jsonsrc.NewReader(r) }
func (stdDriver) NewBytes(b []byte) skema.TokenSource     { return jsonsrc.NewBytes(b) }
func (stdDriver) Name() string                           { return "encoding/json" }

func withDrivers(t *testing.T, fn func(t *testing.T)) {
	t.Run("gojson", fn)
	t.Run("encoding-json", func(t *testing.T) {
		skema.SetJSONDriver(stdDriver{})
		t.Cleanup(skema.UseDefaultJSONDriver)
		fn(t)
	})
}

func order() *skema.Schema {
	return g.Object().
		Field("id", g.Number()).
		Field("items", g.Array(g.Object().Field("sku", g.String()).MustBuild())).
		MustBuild()
}

func TestParseFrom_JSON(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		r := skema.ParseFrom(ctx, order(), skema.JSONBytes([]byte(`{"id": 7, "items": [{"sku": "a"}, {"sku": "b", "x": 1}]}`)))
		require.True(t, r.OK(), "%v", r.Issues)
		assert.Equal(t, map[string]any{"id": float64(7), "items": []any{
			map[string]any{"sku": "a"}, map[string]any{"sku": "b"},
		}}, r.Value)

		r = skema.ParseFrom(ctx, order(), skema.JSONReader(strings.NewReader(`{"id": "7", "items": [{"sku": 1}]}`)))
		assert.Equal(t, []string{"id", "items.0.sku"}, paths(r.Issues))
	})
}

func paths(iss skema.Issues) []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Path.String()
	}
	return out
}

func TestParseFrom_DuplicateKeys(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		doc := []byte(`{"id": 1, "items": [{"sku": "a", "sku": "b"}]}`)

		r := skema.ParseFrom(ctx, order(), skema.JSONBytes(doc))
		assert.True(t, r.OK())

		r = skema.ParseFrom(ctx, order(), skema.JSONBytes(doc), skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}})
		require.Len(t, r.Issues, 1)
		assert.Equal(t, skema.CodeDuplicateKey, r.Issues[0].Code)
		assert.Equal(t, "/items/0/sku", r.Issues[0].Path.Pointer())

		r = skema.ParseFrom(ctx, order(), skema.JSONBytes(doc), skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Warn}})
		assert.True(t, r.OK())
		require.Len(t, r.Warnings, 1)
		assert.Equal(t, skema.CodeDuplicateKey, r.Warnings[0].Code)
	})
}

func TestParseFrom_DepthAndBytes(t *testing.T) {
	deep := []byte(strings.Repeat("[", 6) + strings.Repeat("]", 6))
	r := skema.ParseFrom(ctx, g.JSON(), skema.JSONBytes(deep), skema.ParseOpt{MaxDepth: 3})
	require.Len(t, r.Issues, 1)
	assert.Equal(t, skema.CodeTooDeep, r.Issues[0].Code)

	big := []byte(`{"id": 1, "items": [` + strings.Repeat(`{"sku":"aaaaaaaa"},`, 50) + `{"sku":"z"}]}`)
	r = skema.ParseFrom(ctx, order(), skema.JSONReader(bytes.NewReader(big)), skema.ParseOpt{MaxBytes: 64})
	require.Len(t, r.Issues, 1)
	assert.Equal(t, skema.CodeTruncated, r.Issues[0].Code)

	r = skema.ParseFrom(ctx, order(), skema.JSONReader(bytes.NewReader(big)), skema.ParseOpt{MaxBytes: int64(len(big))})
	assert.True(t, r.OK(), "%v", r.Issues)
}

func TestParseFrom_SyntaxError(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		r := skema.ParseFrom(ctx, order(), skema.JSONBytes([]byte(`{"id": `)))
		require.Len(t, r.Issues, 1)
		assert.Equal(t, skema.CodeParseError, r.Issues[0].Code)
	})
}

func TestParseFrom_NilInputs(t *testing.T) {
	assert.False(t, skema.ParseFrom(ctx, nil, skema.Value(1)).OK())
	r := skema.ParseFrom(ctx, g.Any(), nil)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, skema.CodeParseError, r.Issues[0].Code)
}

func TestJSONSelect(t *testing.T) {
	doc := []byte(`{"data": {"orders": [{"id": 1, "items": []}, {"id": "x", "items": []}]}}`)

	r := skema.ParseFrom(ctx, order(), skema.JSONSelect(doc, "data.orders.0"))
	require.True(t, r.OK(), "%v", r.Issues)

	r = skema.ParseFrom(ctx, g.Array(order()), skema.JSONSelect(doc, "data.orders"))
	assert.Equal(t, []string{"1.id"}, paths(r.Issues))

	r = skema.ParseFrom(ctx, g.Array(g.Number()), skema.JSONSelect(doc, "data.orders.#.id"))
	assert.Equal(t, []string{"1"}, paths(r.Issues))

	r = skema.ParseFrom(ctx, g.Number().Default(3), skema.JSONSelect(doc, "data.missing"))
	require.True(t, r.OK())
	assert.Equal(t, float64(3), r.Value)

	r = skema.ParseFrom(ctx, g.Any(), skema.JSONSelect([]byte(`{"a":`), "a"))
	assert.Equal(t, []string{skema.CodeParseError}, r.Issues.Codes())
}

func TestYAMLSource(t *testing.T) {
	doc := []byte("id: 7\nitems:\n  - sku: a\n  - sku: 2\n")
	r := skema.ParseFrom(ctx, order(), skema.YAMLBytes(doc))
	assert.Equal(t, []string{"items.1.sku"}, paths(r.Issues))

	docs, err := skema.YAMLDocuments([]byte("id: 1\nitems: []\n---\nid: 2\nitems: []\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "value", d.Format())
		assert.True(t, skema.ParseFrom(ctx, order(), d).OK())
	}

	r = skema.ParseFrom(ctx, g.Any(), skema.YAMLBytes([]byte("a: [1, 2")))
	assert.Equal(t, []string{skema.CodeParseError}, r.Issues.Codes())
}

func TestYAMLSource_DepthLimit(t *testing.T) {
	doc := []byte("a:\n  b:\n    c: 1\n")
	r := skema.ParseFrom(ctx, g.JSON(), skema.YAMLBytes(doc), skema.ParseOpt{MaxDepth: 2})
	assert.Equal(t, []string{skema.CodeTooDeep}, r.Issues.Codes())
	assert.True(t, skema.ParseFrom(ctx, g.JSON(), skema.YAMLBytes(doc), skema.ParseOpt{MaxDepth: 3}).OK())

	n := skema.DefaultMaxDepth + 1
	deep := strings.Repeat("[", n) + strings.Repeat("]", n)
	_, err := skema.YAMLDocuments([]byte(deep))
	iss, ok := skema.AsIssues(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, []string{skema.CodeTooDeep}, iss.Codes())
}

func TestDriverRegistry(t *testing.T) {
	assert.Equal(t, "goccy/go-json", skema.CurrentJSONDriver().Name())
	skema.SetJSONDriver(stdDriver{})
	assert.Equal(t, "encoding/json", skema.CurrentJSONDriver().Name())
	skema.SetJSONDriver(nil)
	assert.Equal(t, "encoding/json", skema.CurrentJSONDriver().Name())
	skema.UseDefaultJSONDriver()
	assert.Equal(t, "goccy/go-json", skema.CurrentJSONDriver().Name())
}
