// Package forms holds the draft state of the editing screens: the recipe
// form with its tag input, the login/register form and the profile forms.
package forms

import (
	"errors"

	"github.com/pt428/recipes/internal/client/client"
)

// GeneralField collects errors that do not belong to a single input.
const GeneralField = "general"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrOutOfRange   = errors.New("index out of range")
	ErrInvalidValue = errors.New("invalid value")
)

// FieldErrors maps an input name to its messages. Nested inputs use dotted
// keys such as "ingredients.0.name".
type FieldErrors map[string][]string

// First returns the first message for field or "".
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// fromError turns a failed submission into field errors. Validation errors
// keep the server's fields; anything else lands under GeneralField.
func fromError(err error) FieldErrors {
	out := FieldErrors{}
	if apiErr, ok := client.AsError(err); ok && apiErr.Kind == client.KindValidation {
		for k, v := range apiErr.Fields {
			out[k] = append([]string(nil), v...)
		}
		if out.Empty() {
			out.Add(GeneralField, apiErr.Summary())
		}
		return out
	}
	out.Add(GeneralField, err.Error())
	return out
}
