package fieldset

import "strings"

// ExpandParents materializes the missing ancestor containers of a field
// list so that every path's full ancestor chain appears in the output
// before the path itself, exactly once each, in first-appearance order.
//
// A prefix the caller declared explicitly is never shadowed by an
// auto-parent: the explicit declaration is kept once, at its original
// position. Expansion is idempotent: re-expanding an expanded list
// returns it unchanged.
func ExpandParents(fields []Field) []Field {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f.Path] = true
	}

	emitted := make(map[string]bool, len(fields))
	out := make([]Field, 0, len(fields))

	for _, f := range fields {
		segments := ParsePath(f.Path)
		if len(segments) == 0 {
			continue
		}

		// Proper prefixes, root to immediate parent.
		for i := 1; i < len(segments); i++ {
			prefix := joinSegments(segments[:i])
			if emitted[prefix] || declared[prefix] {
				continue
			}
			kind := KindObject
			if segments[i-1].ArrayElement {
				kind = KindArray
			}
			out = append(out, Field{
				Path:       prefix,
				Kind:       kind,
				AutoParent: true,
			})
			emitted[prefix] = true
		}

		if !emitted[f.Path] {
			out = append(out, f)
			emitted[f.Path] = true
		}
	}
	return out
}

// DescriptionIndex maps normalized field paths to their descriptions.
// Array segments normalize to a concrete first index ("seg[]" → "seg[0]")
// so the index joins against the concrete positions of a synthesized
// document. Fields with empty descriptions are omitted.
func DescriptionIndex(fields []Field) map[string]string {
	index := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Description == "" {
			continue
		}
		index[normalizePath(f.Path)] = f.Description
	}
	return index
}

func normalizePath(path string) string {
	return strings.ReplaceAll(path, "[]", "[0]")
}
