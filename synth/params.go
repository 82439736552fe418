package synth

import (
	"github.com/google/uuid"

	"github.com/apidock/apidock/fieldset"
)

// Parameter is one flat descriptor in the document store's schema format.
type Parameter struct {
	ID          string        `json:"id"`
	Key         string        `json:"key"`
	Kind        fieldset.Kind `json:"type"`
	Required    bool          `json:"required"`
	Description string        `json:"description"`
	Value       any           `json:"value"`
}

// Parameters projects an expanded field list into parameter descriptors,
// one per field, order preserved. The descriptor list and the document
// Build produces from the same list stay addressable by the same paths.
// Auto-parent fields are never required and carry an empty value; they
// have no standalone value of their own.
func Parameters(fields []fieldset.Field) []Parameter {
	params := make([]Parameter, 0, len(fields))
	for _, f := range fields {
		p := Parameter{
			ID:          uuid.NewString(),
			Key:         f.Path,
			Kind:        f.Kind,
			Description: f.Description,
		}
		if f.AutoParent {
			p.Value = ""
		} else {
			p.Required = f.Required
			p.Value = exampleValue(f)
		}
		params = append(params, p)
	}
	return params
}
