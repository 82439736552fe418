package fieldset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []Segment
	}{
		{
			name: "empty",
			path: "",
			want: nil,
		},
		{
			name: "single key",
			path: "code",
			want: []Segment{{Name: "code"}},
		},
		{
			name: "nested keys",
			path: "data.user.name",
			want: []Segment{{Name: "data"}, {Name: "user"}, {Name: "name"}},
		},
		{
			name: "array element",
			path: "items[].id",
			want: []Segment{{Name: "items", ArrayElement: true}, {Name: "id"}},
		},
		{
			name: "nested arrays",
			path: "data.rows[].cells[].value",
			want: []Segment{
				{Name: "data"},
				{Name: "rows", ArrayElement: true},
				{Name: "cells", ArrayElement: true},
				{Name: "value"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePath(tt.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestJoinSegmentsRoundTrip(t *testing.T) {
	paths := []string{"code", "data.user.name", "items[].id", "a.b[].c[].d"}
	for _, path := range paths {
		if got := joinSegments(ParsePath(path)); got != path {
			t.Errorf("round trip of %q yielded %q", path, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	if got := ParseKind("integer"); got != KindInteger {
		t.Errorf("expected KindInteger, got %s", got)
	}
	if got := ParseKind(""); got != KindString {
		t.Errorf("empty type should default to KindString, got %s", got)
	}
	if got := ParseKind("uuid"); got != KindString {
		t.Errorf("unknown type should default to KindString, got %s", got)
	}
}

func TestKindDefault(t *testing.T) {
	tests := []struct {
		kind Kind
		want any
	}{
		{KindString, ""},
		{KindInteger, 0},
		{KindNumber, 0.0},
		{KindBoolean, false},
		{KindNull, nil},
	}
	for _, tt := range tests {
		if got := tt.kind.Default(); got != tt.want {
			t.Errorf("%s default: expected %v, got %v", tt.kind, tt.want, got)
		}
	}

	if got, ok := KindArray.Default().([]any); !ok || len(got) != 0 {
		t.Errorf("array default should be empty []any, got %v", KindArray.Default())
	}
	if got, ok := KindObject.Default().(map[string]any); !ok || len(got) != 0 {
		t.Errorf("object default should be empty map, got %v", KindObject.Default())
	}
}
