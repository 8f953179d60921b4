// Package validator checks usecase inputs against their `validate` tags.
//
// Failures come back as V10ValidationError, a map from json field name to
// an English message, which the router renders under "error".
package validator

// Validator validates a struct, returning a field-keyed error on failure.
type Validator interface {
	Validate(data any) error
}
