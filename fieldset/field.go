package fieldset

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error values for field validation and decoding.
var (
	ErrEmptyPath          = errors.New("field has empty path")
	ErrMissingDescription = errors.New("field has no description")
)

// Kind is the declared type of a field value.
type Kind string

// Field kinds. Unknown or empty type strings parse to KindString.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindNull    Kind = "null"
)

// ParseKind maps a type string to a Kind, defaulting to KindString.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindString, KindInteger, KindNumber, KindBoolean, KindArray, KindObject, KindNull:
		return Kind(s)
	default:
		return KindString
	}
}

// Default returns the zero example value for the kind.
func (k Kind) Default() any {
	switch k {
	case KindInteger:
		return 0
	case KindNumber:
		return 0.0
	case KindBoolean:
		return false
	case KindArray:
		return []any{}
	case KindObject:
		return map[string]any{}
	case KindNull:
		return nil
	default:
		return ""
	}
}

// Field is one declared entry of a field list.
type Field struct {
	// Path locates the field in the target document, e.g. "data.items[].id".
	Path string

	// Kind is the declared value type.
	Kind Kind

	// Required marks the field mandatory in the documented schema.
	Required bool

	// Description is the human documentation line. Required for
	// caller-declared fields; empty on auto-parents.
	Description string

	// Example is used verbatim during synthesis when non-nil.
	Example any

	// AutoParent marks a container synthesized by ExpandParents rather
	// than declared by the caller.
	AutoParent bool
}

// Validate checks the construction invariants for a caller-declared field.
// Auto-parent fields are exempt from the description requirement.
func (f Field) Validate() error {
	if f.Path == "" {
		return ErrEmptyPath
	}
	if !f.AutoParent && f.Description == "" {
		return fmt.Errorf("%w: %s", ErrMissingDescription, f.Path)
	}
	return nil
}

// wireField is the JSON shape produced by the tool-call argument layer.
type wireField struct {
	Key      string `json:"key"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
	Desc     string `json:"desc,omitempty"`
	Example  any    `json:"example,omitempty"`
}

// DecodeList parses the wire-format JSON array into a field list.
// Entries with an empty key are dropped. Every surviving entry is
// validated; the first invalid entry aborts the decode.
func DecodeList(data []byte) ([]Field, error) {
	var wire []wireField
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode field list: %w", err)
	}

	fields := make([]Field, 0, len(wire))
	for _, w := range wire {
		if w.Key == "" {
			continue
		}
		f := Field{
			Path:        w.Key,
			Kind:        ParseKind(w.Type),
			Required:    w.Required,
			Description: w.Desc,
			Example:     w.Example,
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}
