package dynaitem

import (
	"errors"
	"fmt"
)

// Definition errors are raised once, when a struct type is first parsed into a
// [Schema]. They signal a programming error in the type declaration and should
// abort program or module initialization; see [Register] and [MustRegister].
var (
	// ErrNotStruct is returned when a schema is requested for a non-struct type.
	ErrNotStruct = errors.New("not a struct type")

	// ErrNoNamedFields is returned when a struct has no usable named fields
	// (every field is unexported or excluded by its tag).
	ErrNoNamedFields = errors.New("no named fields")

	// ErrDuplicateHashKey is returned when more than one field is tagged as the hash key.
	ErrDuplicateHashKey = errors.New("duplicate hash key")

	// ErrDuplicateRangeKey is returned when more than one field is tagged as the range key.
	ErrDuplicateRangeKey = errors.New("duplicate range key")

	// ErrDuplicateField is returned when two fields map to the same attribute name.
	ErrDuplicateField = errors.New("duplicate attribute name")

	// ErrUnknownRole is returned when a dynaitem tag carries a value other than
	// "hash" or "range".
	ErrUnknownRole = errors.New("unknown role tag")

	// ErrUnsupportedFieldType is returned when a field's type cannot be
	// represented as an attribute value (channels, functions, complex numbers,
	// and embedded fields).
	ErrUnsupportedFieldType = errors.New("unsupported field type")

	// ErrNoHashKey is returned when a key projection is requested for a schema
	// that has no field tagged as the hash key.
	ErrNoHashKey = errors.New("no hash key")

	// ErrDuplicateVariant is returned when an enum declares the same label or
	// value more than once.
	ErrDuplicateVariant = errors.New("duplicate enum variant")
)

// Conversion errors are raised per call to [Schema.UnmarshalItem] or
// [Enum.Decode]. They always identify the offending attribute and are
// recoverable by the caller; a typical response is to treat the stored item as
// malformed and skip or report it.
var (
	// ErrMissingField matches a [MissingFieldError] via errors.Is.
	ErrMissingField = errors.New("missing item attribute")

	// ErrInvalidField matches an [InvalidFieldError] via errors.Is.
	ErrInvalidField = errors.New("invalid item attribute")

	// ErrInvalidType is returned by [Enum.Decode] when the attribute value does
	// not carry a string payload.
	ErrInvalidType = errors.New("invalid attribute type")

	// ErrInvalidFormat is returned by [Enum.Decode] when the string payload does
	// not match any declared variant label.
	ErrInvalidFormat = errors.New("invalid attribute format")
)

// SchemaError wraps a definition error with the name of the offending type.
type SchemaError struct {
	Type string // the Go type the schema was parsed from
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// MissingFieldError is returned by [Schema.UnmarshalItem] when a declared
// attribute is absent from the item.
type MissingFieldError struct {
	Field string // the attribute name that was not found
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("attribute %q not found in item", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidFieldError is returned by [Schema.UnmarshalItem] when a declared
// attribute is present but its value cannot be decoded into the field.
type InvalidFieldError struct {
	Field string // the attribute name that failed to decode
	Err   error  // the underlying codec failure
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("attribute %q: %v", e.Field, e.Err)
}

func (e *InvalidFieldError) Is(target error) bool { return target == ErrInvalidField }

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// IsMissingField reports whether err indicates an absent item attribute.
func IsMissingField(err error) bool { return errors.Is(err, ErrMissingField) }

// IsInvalidField reports whether err indicates an undecodable item attribute.
func IsInvalidField(err error) bool { return errors.Is(err, ErrInvalidField) }
