package fieldset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandParents(t *testing.T) {
	fields := []Field{
		{Path: "data.items[].id", Kind: KindString, Description: "item id"},
		{Path: "data.items[].name", Kind: KindString, Description: "item name"},
		{Path: "code", Kind: KindInteger, Description: "status code"},
	}

	got := ExpandParents(fields)

	wantPaths := []string{"data", "data.items[]", "data.items[].id", "data.items[].name", "code"}
	if len(got) != len(wantPaths) {
		t.Fatalf("expected %d fields, got %d: %v", len(wantPaths), len(got), paths(got))
	}
	for i, want := range wantPaths {
		if got[i].Path != want {
			t.Errorf("field %d: expected path %q, got %q", i, want, got[i].Path)
		}
	}

	if !got[0].AutoParent || got[0].Kind != KindObject {
		t.Errorf("data should be an auto-parent object, got %+v", got[0])
	}
	if !got[1].AutoParent || got[1].Kind != KindArray {
		t.Errorf("data.items[] should be an auto-parent array, got %+v", got[1])
	}
	if got[2].AutoParent {
		t.Error("declared leaf must not be marked auto-parent")
	}
}

func TestExpandParentsExplicitDeclarationWins(t *testing.T) {
	fields := []Field{
		{Path: "user", Kind: KindObject, Description: "the user object"},
		{Path: "user.name", Kind: KindString, Description: "display name"},
	}

	got := ExpandParents(fields)

	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(got), paths(got))
	}
	if got[0].Path != "user" || got[0].AutoParent {
		t.Errorf("explicit parent must be kept at its position, got %+v", got[0])
	}
	if got[0].Description != "the user object" {
		t.Errorf("explicit parent description lost: %+v", got[0])
	}
}

func TestExpandParentsLateExplicitParent(t *testing.T) {
	// Parent declared after its child: the child's walk must not emit an
	// auto-parent that shadows the upcoming explicit declaration.
	fields := []Field{
		{Path: "user.name", Kind: KindString, Description: "display name"},
		{Path: "user", Kind: KindObject, Description: "the user object"},
	}

	got := ExpandParents(fields)

	count := 0
	for _, f := range got {
		if f.Path == "user" {
			count++
			if f.AutoParent {
				t.Errorf("user must keep its explicit declaration, got %+v", f)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one 'user' field, got %d", count)
	}
}

func TestExpandParentsIdempotent(t *testing.T) {
	fields := []Field{
		{Path: "a.b[].c", Kind: KindString, Description: "c"},
		{Path: "a.d", Kind: KindInteger, Description: "d"},
	}

	once := ExpandParents(fields)
	twice := ExpandParents(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("expansion not idempotent (-once +twice):\n%s", diff)
	}
}

func TestExpandParentsPathCoverage(t *testing.T) {
	fields := []Field{
		{Path: "x.y.z[].w", Kind: KindString, Description: "w"},
		{Path: "x.q", Kind: KindBoolean, Description: "q"},
	}

	got := ExpandParents(fields)

	seen := make(map[string]bool)
	for _, f := range got {
		segments := ParsePath(f.Path)
		for i := 1; i < len(segments); i++ {
			prefix := joinSegments(segments[:i])
			if !seen[prefix] {
				t.Errorf("field %q appears before its ancestor %q", f.Path, prefix)
			}
		}
		seen[f.Path] = true
	}
}

func TestExpandParentsSkipsEmptyPath(t *testing.T) {
	got := ExpandParents([]Field{{Path: "", Description: "ignored"}})
	if len(got) != 0 {
		t.Errorf("empty path should be dropped, got %v", paths(got))
	}
}

func TestDescriptionIndex(t *testing.T) {
	fields := []Field{
		{Path: "items[].id", Description: "item identifier"},
		{Path: "items[]", AutoParent: true},
		{Path: "total", Description: "item count"},
	}

	index := DescriptionIndex(fields)

	if got := index["items[0].id"]; got != "item identifier" {
		t.Errorf("array path not normalized to concrete index: %v", index)
	}
	if got := index["total"]; got != "item count" {
		t.Errorf("plain path missing: %v", index)
	}
	if _, ok := index["items[0]"]; ok {
		t.Error("empty descriptions must not be indexed")
	}
	if len(index) != 2 {
		t.Errorf("expected 2 entries, got %d", len(index))
	}
}

func paths(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Path
	}
	return strings.Join(parts, ", ")
}
