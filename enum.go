package dynaitem

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EnumVariant pairs an enum value with the string label that represents it in
// attribute values.
type EnumVariant[E comparable] struct {
	Value E
	Label string
}

// Variant declares a single enum variant. By convention the label matches the
// variant's declared name, keeping the wire representation stable across
// encode and decode cycles:
//
//	dynaitem.Variant(StatusActive, "Active")
func Variant[E comparable](value E, label string) EnumVariant[E] {
	return EnumVariant[E]{Value: value, Label: label}
}

// Enum is a closed-set codec converting an enumerated type's variants to and
// from a single string-valued attribute. An Enum is built once per enumerated
// type and is safe for concurrent use.
type Enum[E comparable] struct {
	variants []EnumVariant[E]
	labels   map[E]string
	values   map[string]E
}

// NewEnum builds a codec over the declared variants. Construction fails with
// [ErrDuplicateVariant] when two variants share a label or a value; this is a
// definition error and should abort initialization.
func NewEnum[E comparable](variants ...EnumVariant[E]) (*Enum[E], error) {
	e := &Enum[E]{
		variants: variants,
		labels:   make(map[E]string, len(variants)),
		values:   make(map[string]E, len(variants)),
	}
	for _, v := range variants {
		if _, ok := e.labels[v.Value]; ok {
			return nil, fmt.Errorf("enum value for label %q declared twice: %w", v.Label, ErrDuplicateVariant)
		}
		if _, ok := e.values[v.Label]; ok {
			return nil, fmt.Errorf("enum label %q declared twice: %w", v.Label, ErrDuplicateVariant)
		}
		e.labels[v.Value] = v.Label
		e.values[v.Label] = v.Value
	}
	return e, nil
}

// MustNewEnum is like [NewEnum] but panics on definition errors. It is
// intended for package-level enum declarations:
//
//	var statusEnum = dynaitem.MustNewEnum(
//	    dynaitem.Variant(StatusActive, "Active"),
//	    dynaitem.Variant(StatusClosed, "Closed"),
//	)
func MustNewEnum[E comparable](variants ...EnumVariant[E]) *Enum[E] {
	e, err := NewEnum(variants...)
	if err != nil {
		panic(fmt.Sprintf("dynaitem: %v", err))
	}
	return e
}

// NewStringEnum builds a codec for a string-kinded enum type using the
// identity mapping: each value is its own label.
func NewStringEnum[E ~string](values ...E) (*Enum[E], error) {
	variants := make([]EnumVariant[E], len(values))
	for i, v := range values {
		variants[i] = Variant(v, string(v))
	}
	return NewEnum(variants...)
}

// Labels returns the variant labels in declaration order.
func (e *Enum[E]) Labels() []string {
	out := make([]string, len(e.variants))
	for i, v := range e.variants {
		out[i] = v.Label
	}
	return out
}

// Encode converts v into a string attribute value carrying its label. Encode
// is total over the declared variants; encoding an undeclared value is a
// programming error and panics.
func (e *Enum[E]) Encode(v E) types.AttributeValue {
	label, ok := e.labels[v]
	if !ok {
		panic(fmt.Sprintf("dynaitem: enum has no variant for value %v", v))
	}
	return &types.AttributeValueMemberS{Value: label}
}

// Decode converts an attribute value back into the enum variant it encodes.
// It fails with [ErrInvalidType] when av carries no string payload, and with
// [ErrInvalidFormat] when the payload matches no declared label.
func (e *Enum[E]) Decode(av types.AttributeValue) (E, error) {
	var zero E
	sv, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return zero, fmt.Errorf("enum attribute must be a string, got %T: %w", av, ErrInvalidType)
	}
	v, ok := e.values[sv.Value]
	if !ok {
		return zero, fmt.Errorf("enum label %q not recognized: %w", sv.Value, ErrInvalidFormat)
	}
	return v, nil
}
