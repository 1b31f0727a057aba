package skema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := skema.Issues{
		{Code: skema.CodeInvalidType, Path: skema.PathOf("id")},
		{Code: skema.CodeUnknownKey, Path: skema.PathOf("a/b")},
		{Code: skema.CodeCustom},
		{Code: skema.CodeCustom},
	}
	assert.Equal(t, "invalid_type at /id; unknown_key at /a~1b; custom at /; ... (total 4)", iss.Error())
	assert.Equal(t, "", skema.Issues{}.Error())
}

func TestAsIssues(t *testing.T) {
	_, err := skema.Parse(ctx, g.String(), 1)
	wrapped := fmt.Errorf("load config: %w", err)

	iss, ok := skema.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{skema.CodeInvalidType}, iss.Codes())

	var direct skema.Issues
	assert.True(t, errors.As(wrapped, &direct))

	_, ok = skema.AsIssues(errors.New("plain"))
	assert.False(t, ok)
	_, ok = skema.AsIssues(nil)
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	p := skema.PathOf("children", 1, "children", 0, "value")
	assert.Equal(t, "children.1.children.0.value", p.String())
	assert.Equal(t, "/children/1/children/0/value", p.Pointer())
	assert.Equal(t, "/", skema.Path(nil).Pointer())

	base := skema.PathOf("a")
	child := base.Field("b")
	_ = base.Index(3)
	assert.Equal(t, "a.b", child.String())
	assert.Equal(t, "a", base.String())

	it := p.Issue("my_code", "msg", "min", 1, "got", 0)
	assert.Equal(t, map[string]any{"min": 1, "got": 0}, it.Params)
}

func TestConfigError(t *testing.T) {
	_, err := skema.Omit(g.Object().Field("a", g.String()).MustBuild(), "b")
	assert.EqualError(t, err, `omit: skema: unknown field "b"`)
}
