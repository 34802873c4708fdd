package orchestrator

import (
	"errors"
	"fmt"
)

// ErrMandatoryField is wrapped by every MissingFieldError.
var ErrMandatoryField = errors.New("orchestrator: mandatory field is empty")

// MissingFieldError reports an empty mandatory template field or section.
// Section is set for sections; Template, Instance and Field otherwise.
type MissingFieldError struct {
	Template string
	Instance int
	Field    string
	Section  string
}

func (e MissingFieldError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("orchestrator: section %q is mandatory", e.Section)
	}
	return fmt.Sprintf("orchestrator: %s[%d][%s] is mandatory", e.Template, e.Instance, e.Field)
}

func (e MissingFieldError) Unwrap() error {
	return ErrMandatoryField
}
