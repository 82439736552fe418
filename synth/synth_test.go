package synth

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/apidock/apidock/fieldset"
)

func TestBuildNestedObject(t *testing.T) {
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "a.b", Kind: fieldset.KindInteger, Description: "x", Example: 1},
	})

	got := Build(fields)

	want := map[string]any{"a": map[string]any{"b": 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArrayElement(t *testing.T) {
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "items[].id", Kind: fieldset.KindString, Description: "id", Example: "x1"},
	})

	got := Build(fields)

	want := map[string]any{"items": []any{map[string]any{"id": "x1"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArrayCollapsing(t *testing.T) {
	// Two fields under the same array prefix share the single element.
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "items[].id", Kind: fieldset.KindString, Description: "id", Example: "x1"},
		{Path: "items[].name", Kind: fieldset.KindString, Description: "name", Example: "first"},
	})

	got := Build(fields)

	items, ok := got["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected single-element array, got %v", got["items"])
	}
	elem, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("expected object element, got %T", items[0])
	}
	if elem["id"] != "x1" || elem["name"] != "first" {
		t.Errorf("both fields must land in the one element, got %v", elem)
	}
}

func TestBuildTerminalArray(t *testing.T) {
	fields := []fieldset.Field{
		{Path: "tags[]", Kind: fieldset.KindString, Description: "tag", Example: "beta"},
	}

	got := Build(fields)

	want := map[string]any{"tags": []any{"beta"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLateDeclaredParent(t *testing.T) {
	// The caller describes the container after its children. The explicit
	// declaration keeps its late position through expansion, so Build
	// must reuse the subtree the children already created rather than
	// resetting it to the kind default.
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "user.name", Kind: fieldset.KindString, Description: "display name", Example: "ada"},
		{Path: "user", Kind: fieldset.KindObject, Description: "the user object"},
	})

	got := Build(fields)

	want := map[string]any{"user": map[string]any{"name": "ada"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("late-declared parent wiped the subtree (-want +got):\n%s", diff)
	}
}

func TestBuildLateDeclaredArrayParent(t *testing.T) {
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "items[].id", Kind: fieldset.KindString, Description: "id", Example: "x1"},
		{Path: "items[]", Kind: fieldset.KindArray, Description: "the items"},
	})

	got := Build(fields)

	want := map[string]any{"items": []any{map[string]any{"id": "x1"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("late-declared array parent wiped the element (-want +got):\n%s", diff)
	}
}

func TestBuildLateParentExplicitExampleWins(t *testing.T) {
	// An explicit example on the late container is the caller's word:
	// it replaces whatever the children synthesized.
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "meta.flag", Kind: fieldset.KindBoolean, Description: "flag"},
		{Path: "meta", Kind: fieldset.KindObject, Description: "meta", Example: map[string]any{"pinned": true}},
	})

	got := Build(fields)

	want := map[string]any{"meta": map[string]any{"pinned": true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("explicit example must win (-want +got):\n%s", diff)
	}
}

func TestBuildKindDefaults(t *testing.T) {
	fields := []fieldset.Field{
		{Path: "s", Kind: fieldset.KindString, Description: "s"},
		{Path: "i", Kind: fieldset.KindInteger, Description: "i"},
		{Path: "b", Kind: fieldset.KindBoolean, Description: "b"},
		{Path: "n", Kind: fieldset.KindNull, Description: "n"},
	}

	got := Build(fields)

	if got["s"] != "" || got["i"] != 0 || got["b"] != false || got["n"] != nil {
		t.Errorf("defaults wrong: %v", got)
	}
}

func TestBuildSkipsAutoParents(t *testing.T) {
	// An auto-parent object with no leaves under it must not force shape.
	fields := []fieldset.Field{
		{Path: "data", Kind: fieldset.KindObject, AutoParent: true},
		{Path: "data.id", Kind: fieldset.KindString, Description: "id", Example: "a"},
	}

	got := Build(fields)

	want := map[string]any{"data": map[string]any{"id": "a"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestExampleValueCoercion(t *testing.T) {
	tests := []struct {
		name  string
		field fieldset.Field
		want  any
	}{
		{
			name:  "json number to int",
			field: fieldset.Field{Kind: fieldset.KindInteger, Example: float64(7)},
			want:  7,
		},
		{
			name:  "string to int",
			field: fieldset.Field{Kind: fieldset.KindInteger, Example: " 42 "},
			want:  42,
		},
		{
			name:  "unparsable int keeps raw example",
			field: fieldset.Field{Kind: fieldset.KindInteger, Example: "not-a-number"},
			want:  "not-a-number",
		},
		{
			name:  "string to float",
			field: fieldset.Field{Kind: fieldset.KindNumber, Example: "3.14"},
			want:  3.14,
		},
		{
			name:  "string kind passes through",
			field: fieldset.Field{Kind: fieldset.KindString, Example: "hello"},
			want:  "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exampleValue(tt.field); got != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestRenderIsValidJSON(t *testing.T) {
	fields := fieldset.ExpandParents([]fieldset.Field{
		{Path: "items[].id", Kind: fieldset.KindString, Description: "id", Example: "x1"},
		{Path: "total", Kind: fieldset.KindInteger, Description: "count", Example: 1},
	})

	rendered := Render(Build(fields))

	var back map[string]any
	if err := json.Unmarshal([]byte(rendered), &back); err != nil {
		t.Fatalf("Render output is not valid JSON: %v\n%s", err, rendered)
	}
	if back["total"] != float64(1) {
		t.Errorf("round trip lost data: %v", back)
	}
}
