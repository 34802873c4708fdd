package formdef

import (
	"errors"
	"fmt"
)

var (
	// ErrFormNotFound is returned by callers looking up an unknown form.
	ErrFormNotFound = errors.New("formdef: form not found")
	// ErrInvalidDefinition is wrapped by every DefinitionError.
	ErrInvalidDefinition = errors.New("formdef: invalid definition")
)

// DefinitionError reports a problem in a form definition file.
type DefinitionError struct {
	Source  string
	Form    string
	Path    string
	Message string
}

func (e DefinitionError) Error() string {
	switch {
	case e.Form == "":
		return fmt.Sprintf("formdef: file %s: %s", e.Source, e.Message)
	case e.Path == "":
		return fmt.Sprintf("formdef: form %q (file %s): %s", e.Form, e.Source, e.Message)
	default:
		return fmt.Sprintf("formdef: form %q (file %s) %s: %s", e.Form, e.Source, e.Path, e.Message)
	}
}

// Unwrap lets errors.Is match ErrInvalidDefinition.
func (e DefinitionError) Unwrap() error {
	return ErrInvalidDefinition
}
