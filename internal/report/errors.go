package report

import "errors"

var (
	// ErrTemplateMissing indicates the template document does not exist.
	ErrTemplateMissing = errors.New("report template not found")

	// ErrNoFormFields indicates the template exposes no fillable fields.
	ErrNoFormFields = errors.New("report template has no fillable fields")

	// ErrUnknownField indicates a write was attempted against a field
	// the template's catalog does not contain.
	ErrUnknownField = errors.New("unknown form field")
)
