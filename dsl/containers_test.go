package dsl_test

import (
	"context"
	"reflect"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

func TestRecord_SingleIssueAtOffendingKey(t *testing.T) {
	ctx := context.Background()
	rec := g.Record(g.String(), g.Number())
	in := map[string]any{"1": 1, "2": 2, "3": map[string]any{"3": 2}}

	r := skema.Validate(ctx, rec, in)
	if len(r.Issues) != 1 {
		t.Fatalf("expected exactly one issue, got %v", r.Issues)
	}
	if r.Issues[0].Path.String() != "3" || r.Issues[0].Code != skema.CodeInvalidType {
		t.Fatalf("unexpected issue %#v", r.Issues[0])
	}
}

func TestRecord_KeySchema(t *testing.T) {
	ctx := context.Background()
	rec := g.Record(g.Enum("a", "b"), g.Bool())
	r := skema.Validate(ctx, rec, map[string]any{"a": true, "c": false})
	if len(r.Issues) != 1 || r.Issues[0].Code != skema.CodeInvalidEnum || r.Issues[0].Path.String() != "c" {
		t.Fatalf("unexpected issues %v", r.Issues)
	}
}

func TestUnion_OrderDecidesOutput(t *testing.T) {
	ctx := context.Background()
	strFirst := g.Union(g.String(), g.CoerceNumber())
	numFirst := g.Union(g.CoerceNumber(), g.String())

	v, _ := skema.Parse(ctx, strFirst, "42")
	if v != "42" {
		t.Fatalf("string-first: got %#v", v)
	}
	v, _ = skema.Parse(ctx, numFirst, "42")
	if v != float64(42) {
		t.Fatalf("number-first: got %#v", v)
	}
}

func TestUnion_NoMatchKeepsAlternatives(t *testing.T) {
	r := skema.Validate(context.Background(), g.Union(g.String(), g.Number()), true)
	if len(r.Issues) != 1 || r.Issues[0].Code != skema.CodeInvalidUnion {
		t.Fatalf("expected one invalid_union, got %v", r.Issues)
	}
	if len(r.Issues[0].Alternatives) != 2 {
		t.Fatalf("expected per-alternative issues, got %#v", r.Issues[0])
	}
}

func TestArray_IssuesPerIndex(t *testing.T) {
	r := skema.Validate(context.Background(), g.Array(g.Number()), []any{1, "x", 3, "y"})
	if len(r.Issues) != 2 || r.Issues[0].Path.String() != "1" || r.Issues[1].Path.String() != "3" {
		t.Fatalf("unexpected issues %v", r.Issues)
	}
}

func TestJSON_AcceptsValuesRejectsOthers(t *testing.T) {
	ctx := context.Background()
	js := g.JSON()
	doc := map[string]any{
		"name": "x",
		"tags": []any{"a", 1.5, true, nil},
		"nested": map[string]any{
			"deep": []any{map[string]any{"k": "v"}},
		},
	}
	v, err := skema.Parse(ctx, js, doc)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(v, doc) {
		t.Fatalf("json output differs: %#v", v)
	}

	r := skema.Validate(ctx, js, map[string]any{"f": func() {}})
	if r.OK() {
		t.Fatalf("functions are not JSON")
	}
	if r.Issues[0].Path.String() != "" || r.Issues[0].Code != skema.CodeInvalidUnion {
		t.Fatalf("unexpected issue %#v", r.Issues[0])
	}
}

func TestJSON_RejectsCircularInput(t *testing.T) {
	cyc := map[string]any{"a": 1}
	cyc["self"] = cyc
	r := skema.Validate(context.Background(), g.JSON(), cyc)
	if r.OK() {
		t.Fatalf("circular input must be rejected")
	}
}
