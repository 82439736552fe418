package synth

import (
	"strconv"
	"strings"

	"github.com/apidock/apidock/fieldset"
)

// Build synthesizes the nested document a field list describes. The input
// should already be expanded (fieldset.ExpandParents); auto-parent fields
// are skipped; they exist to carry descriptions for the renderer, the
// document shape follows from the leaf paths alone.
func Build(fields []fieldset.Field) map[string]any {
	root := map[string]any{}
	for _, f := range fields {
		if f.AutoParent {
			continue
		}
		segments := fieldset.ParsePath(f.Path)
		if len(segments) == 0 {
			continue
		}
		writeLeaf(root, segments, f)
	}
	return root
}

func writeLeaf(root map[string]any, segments []fieldset.Segment, f fieldset.Field) {
	current := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			// A container declared after its descendants must not wipe
			// the subtree those descendants already built. Without an
			// explicit example the existing container wins.
			if f.Example == nil && containerExists(current, seg, f.Kind) {
				return
			}
			if seg.ArrayElement {
				current[seg.Name] = []any{exampleValue(f)}
			} else {
				current[seg.Name] = exampleValue(f)
			}
			return
		}

		if seg.ArrayElement {
			// Single-element array: reuse the element if it already
			// holds an object, otherwise (re)create it.
			if arr, ok := current[seg.Name].([]any); ok && len(arr) > 0 {
				if elem, ok := arr[0].(map[string]any); ok {
					current = elem
					continue
				}
			}
			elem := map[string]any{}
			current[seg.Name] = []any{elem}
			current = elem
			continue
		}

		child, ok := current[seg.Name].(map[string]any)
		if !ok {
			child = map[string]any{}
			current[seg.Name] = child
		}
		current = child
	}
}

// containerExists reports whether a container value is already in place
// at the terminal segment, so a bare object/array declaration can reuse
// it instead of resetting it to the kind default.
func containerExists(current map[string]any, seg fieldset.Segment, kind fieldset.Kind) bool {
	if seg.ArrayElement {
		arr, ok := current[seg.Name].([]any)
		return ok && len(arr) > 0
	}
	switch kind {
	case fieldset.KindObject:
		_, ok := current[seg.Name].(map[string]any)
		return ok
	case fieldset.KindArray:
		_, ok := current[seg.Name].([]any)
		return ok
	default:
		return false
	}
}

// exampleValue resolves the synthesized value for a field: the example
// verbatim when present (numerics coerced best-effort), else the kind
// default. Coercion never fails: an unparsable numeric example is kept
// as the raw example value.
func exampleValue(f fieldset.Field) any {
	if f.Example == nil {
		return f.Kind.Default()
	}

	switch f.Kind {
	case fieldset.KindInteger:
		switch v := f.Example.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	case fieldset.KindNumber:
		switch v := f.Example.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n
			}
		}
	}
	return f.Example
}
