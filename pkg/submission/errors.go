package submission

import "errors"

var (
	// ErrInvalidKey reports a form input name that does not follow the page
	// form naming scheme.
	ErrInvalidKey = errors.New("submission: invalid key")
	// ErrInvalidDocument reports a submission document that cannot be decoded.
	ErrInvalidDocument = errors.New("submission: invalid document")
)
