package synth

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const renderIndent = "    "

// Render pretty-prints a synthesized value as JSON with 4-space indent
// and sorted object keys. The output is machine-parseable.
func Render(value any) string {
	var b strings.Builder
	writeValue(&b, value, "", 0, nil)
	return b.String()
}

// RenderAnnotated pretty-prints a synthesized value in the same layout as
// Render and appends a trailing "//" comment to every entry whose
// accumulated path has a description in index (see
// fieldset.DescriptionIndex). The comments make the output non-parseable;
// it is documentation text.
func RenderAnnotated(value any, index map[string]string) string {
	var b strings.Builder
	writeValue(&b, value, "", 0, index)
	return b.String()
}

func writeValue(b *strings.Builder, value any, path string, depth int, index map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("{\n")
		for i, k := range keys {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			b.WriteString(strings.Repeat(renderIndent, depth+1))
			fmt.Fprintf(b, "%q: ", k)
			writeValue(b, v[k], childPath, depth+1, index)
			writeEntryTail(b, i < len(keys)-1, childPath, index)
		}
		b.WriteString(strings.Repeat(renderIndent, depth))
		b.WriteString("}")

	case []any:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			b.WriteString(strings.Repeat(renderIndent, depth+1))
			writeValue(b, item, childPath, depth+1, index)
			writeEntryTail(b, i < len(v)-1, childPath, index)
		}
		b.WriteString(strings.Repeat(renderIndent, depth))
		b.WriteString("]")

	default:
		data, err := json.Marshal(v)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(data)
	}
}

func writeEntryTail(b *strings.Builder, more bool, path string, index map[string]string) {
	if more {
		b.WriteString(",")
	}
	if desc, ok := index[path]; ok {
		b.WriteString(" // ")
		b.WriteString(desc)
	}
	b.WriteString("\n")
}
