package dsl_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

func TestObject_DefaultsOnEmptyInput(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("id", g.Int()).Default(0).
		Field("name", g.String()).Default("default").
		MustBuild()

	r := skema.ParseFrom(ctx, obj, skema.JSONBytes([]byte(`{}`)))
	if !r.OK() {
		t.Fatalf("unexpected issues: %v", r.Issues)
	}
	want := map[string]any{"id": float64(0), "name": "default"}
	if !reflect.DeepEqual(r.Value, want) {
		t.Fatalf("want %#v, got %#v", want, r.Value)
	}
}

func TestObject_UnknownPolicies(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{"known": "ok", "x": 1, "y": "z"}

	strip := g.Object().Field("known", g.String()).MustBuild()
	v, err := skema.Parse(ctx, strip, in)
	if err != nil || !reflect.DeepEqual(v, map[string]any{"known": "ok"}) {
		t.Fatalf("strip: got %#v, %v", v, err)
	}

	pass := g.Object().Field("known", g.String()).Passthrough().MustBuild()
	v, err = skema.Parse(ctx, pass, in)
	if err != nil || !reflect.DeepEqual(v, map[string]any{"known": "ok", "x": 1, "y": "z"}) {
		t.Fatalf("passthrough: got %#v, %v", v, err)
	}

	strict := g.Object().Field("known", g.String()).Strict().MustBuild()
	r := skema.Validate(ctx, strict, in)
	if got := r.Issues.Codes(); !reflect.DeepEqual(got, []string{skema.CodeUnknownKey, skema.CodeUnknownKey}) {
		t.Fatalf("strict: got %v", r.Issues)
	}
	if r.Issues[0].Path.String() != "x" || r.Issues[1].Path.String() != "y" {
		t.Fatalf("strict: unexpected paths %v", r.Issues)
	}
}

func TestObject_FieldModifiers(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("nick", g.String()).Optional().
		Field("bio", g.String()).Nullable().
		Field("age", g.Number()).Catch(-1).
		Field("email", g.String()).Describe("contact address").
		MustBuild()

	v, err := skema.Parse(ctx, obj, map[string]any{"bio": nil, "age": "old", "email": "a@b"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"bio": nil, "age": -1, "email": "a@b"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("want %#v, got %#v", want, v)
	}
	descs, err := skema.FieldDescriptions(obj)
	if err != nil || descs["email"] != "contact address" {
		t.Fatalf("descriptions: %v, %v", descs, err)
	}
}

func TestObject_RedeclaredFieldKeepsPosition(t *testing.T) {
	obj := g.Object().
		Field("a", g.String()).
		Field("b", g.String()).
		Field("a", g.Number()).
		MustBuild()
	fs := obj.Fields()
	if len(fs) != 2 || fs[0].Name != "a" || fs[0].Schema.Kind() != skema.KindNumber {
		t.Fatalf("unexpected fields: %#v", fs)
	}
}

func TestObject_Refine(t *testing.T) {
	ctx := context.Background()
	obj := g.Object().
		Field("email", g.String()).
		Field("confirm", g.String()).
		Refine("email==confirm", func(ctx context.Context, m map[string]any) error {
			if m["email"] != m["confirm"] {
				return fmt.Errorf("confirm must match email")
			}
			return nil
		}).
		MustBuild()

	if _, err := skema.Parse(ctx, obj, map[string]any{"email": "a", "confirm": "a"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := skema.Parse(ctx, obj, map[string]any{"email": "a", "confirm": "b"})
	iss, ok := skema.AsIssues(err)
	if !ok || iss[0].Code != skema.CodeCustom || iss[0].Message != "confirm must match email" {
		t.Fatalf("expected custom issue, got %v", err)
	}
}

func TestObject_BuildErrors(t *testing.T) {
	_, err := g.Object().Field("", g.String()).Build()
	if !errors.Is(err, g.ErrEmptyFieldName) {
		t.Fatalf("expected ErrEmptyFieldName, got %v", err)
	}
	_, err = g.Object().Field("a", nil).Build()
	var ce *skema.ConfigError
	if !errors.As(err, &ce) || ce.Field != "a" || !errors.Is(err, skema.ErrNilSchema) {
		t.Fatalf("expected nil schema config error, got %v", err)
	}
}
