// Package fieldset models flat field-list declarations for API endpoint
// documents and expands them into fully-parented lists ready for synthesis.
//
// A field list describes a nested document one leaf at a time: each entry
// names its position with a dotted path ("data.items[].id"), a type, a
// requiredness flag, a human description, and an optional example value.
// Callers rarely declare the intermediate containers, so ExpandParents
// materializes them: every path's full ancestor chain is present exactly
// once, in first-appearance order, with synthesized ancestors marked
// AutoParent.
//
// # Paths
//
// Paths split on "."; a segment ending in "[]" addresses the single
// element of an array at that position. No escaping is supported: a
// literal "." or "[]" inside a field name cannot be represented.
//
// # Wire format
//
// DecodeList accepts the JSON array form used by the tool-call argument
// layer:
//
//	[{"key": "items[].id", "type": "string", "required": true,
//	  "desc": "item identifier", "example": "it_01"}]
//
// The argument layer validates syntax before this package sees the input;
// functions here assume well-formed field lists and do not re-validate.
package fieldset
