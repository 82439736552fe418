package synth

import (
	"errors"
	"fmt"

	"github.com/apidock/apidock/fieldset"
)

// ErrMissingFields reports a provided response item that carries neither a
// canonical body nor a field list. Such an item cannot be synthesized and
// aborts the whole normalization call.
var ErrMissingFields = errors.New("response item has no field list")

// ResponseInput is one response specification as supplied by the caller.
// An item is canonical when it already carries a raw body or a parameter
// list; otherwise it is simplified and must carry a non-empty field list.
type ResponseInput struct {
	Name    string
	Status  int
	Fields  []fieldset.Field
	RawBody string
	Params  []Parameter
	Default bool
}

// Canonical reports whether the item already matches the store-ready
// response shape.
func (r ResponseInput) Canonical() bool {
	return r.RawBody != "" || r.Params != nil
}

// Response is the canonical, store-ready representation of one response
// example.
type Response struct {
	Name      string      `json:"name"`
	Status    int         `json:"status"`
	RawBody   string      `json:"rawBody"`
	Annotated string      `json:"annotated,omitempty"`
	Params    []Parameter `json:"parameterList"`
	Default   bool        `json:"isDefault"`
}

// NormalizeOptions configures NormalizeResponses.
type NormalizeOptions struct {
	// Fallback is used verbatim when no input is given, and replaces an
	// explicitly empty input unless KeepEmpty is set.
	Fallback []Response

	// KeepEmpty honors an explicitly empty input as an empty response
	// set even when a non-empty Fallback is configured.
	KeepEmpty bool

	// DefaultWhenMissing synthesizes one canonical success response when
	// no input and no fallback are given.
	DefaultWhenMissing bool

	// Annotate additionally renders each synthesized body with inline
	// field comments.
	Annotate bool
}

// defaultResponseFields is the fixed minimal payload of the synthesized
// success response.
var defaultResponseFields = []fieldset.Field{
	{Path: "code", Kind: fieldset.KindInteger, Description: "business status code", Example: 0},
	{Path: "msg", Kind: fieldset.KindString, Description: "status message", Example: "success"},
	{Path: "data", Kind: fieldset.KindObject, Description: "response payload"},
}

// NormalizeResponses reconciles a response-specification input into the
// canonical shape. A nil input means the caller gave no response
// specification at all; a non-nil empty input is an explicit empty set.
// Exactly one of the normalization states applies:
//
//   - explicit empty: empty set, or Fallback when configured and
//     KeepEmpty is off
//   - absent with fallback: Fallback verbatim
//   - absent with DefaultWhenMissing: one synthesized success response,
//     flagged default
//   - absent otherwise: empty set
//   - provided, all canonical: passed through unchanged
//   - provided, simplified: each item expanded, synthesized and
//     projected; the first item is flagged default; an item with no
//     field list is a fatal ErrMissingFields
func NormalizeResponses(inputs []ResponseInput, opts NormalizeOptions) ([]Response, error) {
	switch {
	case inputs != nil && len(inputs) == 0:
		if !opts.KeepEmpty && len(opts.Fallback) > 0 {
			return opts.Fallback, nil
		}
		return []Response{}, nil

	case inputs == nil:
		if len(opts.Fallback) > 0 {
			return opts.Fallback, nil
		}
		if !opts.DefaultWhenMissing {
			return []Response{}, nil
		}
		def, err := synthesizeResponse(ResponseInput{
			Name:   "success",
			Status: 200,
			Fields: defaultResponseFields,
		}, opts.Annotate)
		if err != nil {
			return nil, err
		}
		def.Default = true
		return []Response{def}, nil
	}

	allCanonical := true
	for _, in := range inputs {
		if !in.Canonical() {
			allCanonical = false
			break
		}
	}

	if allCanonical {
		out := make([]Response, len(inputs))
		for i, in := range inputs {
			out[i] = Response{
				Name:    in.Name,
				Status:  statusOr(in.Status, 200),
				RawBody: in.RawBody,
				Params:  in.Params,
				Default: in.Default,
			}
		}
		return out, nil
	}

	out := make([]Response, 0, len(inputs))
	for i, in := range inputs {
		if len(in.Fields) == 0 {
			return nil, fmt.Errorf("%w: item %d (%s)", ErrMissingFields, i, in.Name)
		}
		resp, err := synthesizeResponse(in, opts.Annotate)
		if err != nil {
			return nil, err
		}
		resp.Default = i == 0
		out = append(out, resp)
	}
	return out, nil
}

func synthesizeResponse(in ResponseInput, annotate bool) (Response, error) {
	expanded := fieldset.ExpandParents(in.Fields)
	doc := Build(expanded)

	resp := Response{
		Name:    in.Name,
		Status:  statusOr(in.Status, 200),
		RawBody: Render(doc),
		Params:  Parameters(expanded),
	}
	if annotate {
		resp.Annotated = RenderAnnotated(doc, fieldset.DescriptionIndex(expanded))
	}
	return resp, nil
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
