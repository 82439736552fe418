package fieldset

import "strings"

// Segment is one step of a parsed field path.
type Segment struct {
	// Name is the object key or array field name, "[]" suffix stripped.
	Name string

	// ArrayElement marks a segment that addresses the element of an
	// array rather than an object key.
	ArrayElement bool
}

// ParsePath splits a dotted field path into ordered segments. A segment
// ending in "[]" becomes an array element with the suffix stripped.
// An empty path yields nil.
func ParsePath(path string) []Segment {
	if path == "" {
		return nil
	}

	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if name, ok := strings.CutSuffix(part, "[]"); ok {
			segments = append(segments, Segment{Name: name, ArrayElement: true})
			continue
		}
		segments = append(segments, Segment{Name: part})
	}
	return segments
}

// joinSegments reassembles segments into path form, keeping "[]" suffixes.
func joinSegments(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		if seg.ArrayElement {
			parts[i] = seg.Name + "[]"
		} else {
			parts[i] = seg.Name
		}
	}
	return strings.Join(parts, ".")
}
