// Package synth turns expanded field lists into concrete artifacts: a
// nested example document, a rendered (optionally comment-annotated) body
// text, a flat parameter-descriptor list, and a normalized response set.
//
// All functions are pure and synchronous; processing order is input order
// and output is deterministic (object keys render sorted).
//
// # Array collapsing
//
// An array path ("items[].id") synthesizes a single-element array: every
// field under the same array prefix lands in that one element, and a
// second logical element can never be expressed. This is a known
// limitation of the field-list input format, kept intentionally; callers
// needing multi-element examples must supply a canonical raw body instead.
//
// # Annotated rendering
//
// RenderAnnotated produces documentation text, not JSON: the trailing
// "//" comments make it non-parseable. Use Render when the output must
// round-trip through a JSON parser.
package synth
