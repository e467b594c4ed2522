package gtfs

import (
	"errors"
	"fmt"
)

// Error kinds returned by feed assembly. Every *FeedError unwraps to one of these.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownEnumValue     = errors.New("unknown enum value")
	ErrReferenceNotFound    = errors.New("reference not found")
	ErrMalformedDate        = errors.New("malformed date")
	ErrMalformedField       = errors.New("malformed field")
	ErrDuplicateID          = errors.New("duplicate identifier")

	// ErrAmbiguousReference is a missing reference that could only be inferred
	// if exactly one candidate existed. It also matches ErrMissingRequiredField.
	ErrAmbiguousReference = fmt.Errorf("ambiguous reference: %w", ErrMissingRequiredField)
)

// FeedError describes the first rule violated while assembling a feed.
type FeedError struct {
	Err    error
	Entity string
	Field  string
	Value  string
	// Row is the 1-based position of the offending row within its entity kind, 0 if unknown.
	Row int
}

func (e *FeedError) Error() string {
	msg := e.Err.Error()
	if e.Entity != "" {
		msg += ": " + e.Entity
		if e.Row > 0 {
			msg += fmt.Sprintf(" row %d", e.Row)
		}
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	return msg
}

func (e *FeedError) Unwrap() error { return e.Err }

func missingField(entity, field string) *FeedError {
	return &FeedError{Err: ErrMissingRequiredField, Entity: entity, Field: field}
}

func referenceNotFound(entity, field, id string) *FeedError {
	return &FeedError{Err: ErrReferenceNotFound, Entity: entity, Field: field, Value: id}
}

// UnknownEnumError reports a coded column holding a value outside its closed set.
func UnknownEnumError(kind string, code int) *FeedError {
	return &FeedError{Err: ErrUnknownEnumValue, Field: kind, Value: fmt.Sprint(code)}
}

// MalformedFieldError reports a column whose text could not be decoded into its type.
func MalformedFieldError(entity, field, value string) *FeedError {
	return &FeedError{Err: ErrMalformedField, Entity: entity, Field: field, Value: value}
}

// withRow fills in entity and row on errors raised below the resolver.
func withRow(err error, entity string, row int) error {
	var fe *FeedError
	if errors.As(err, &fe) {
		if fe.Entity == "" {
			fe.Entity = entity
		}
		if fe.Row == 0 {
			fe.Row = row
		}
		return fe
	}
	return err
}

// mustMatch guards the resolver's lookups. A mismatch means the sorted index is broken.
func mustMatch(entity, want, got string) {
	if want != got {
		panic(fmt.Sprintf("gtfs: %s reference mismatch: looked up %q, resolved %q", entity, want, got))
	}
}
