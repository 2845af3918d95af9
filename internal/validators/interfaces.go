// Package validators checks vault records against the field rules of the
// record form: title and secret are required, every field has an upper
// length bound and record ids must be UUIDs.
//
// Validation is scoped: callers name the fields to check (see the Field*
// constants) or pass none to check them all.
package validators

import "context"

// Validator checks value, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
