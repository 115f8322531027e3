package dynaitem

import (
	"fmt"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is an alias for the dynamodb attribute value map.
type Item = map[string]types.AttributeValue

// MarshalItem converts v into a fresh Item containing every declared field
// exactly once. v must be a value (or pointer to a value) of the schema's
// source type; any other input is a programming error and panics.
//
// MarshalItem is total: field types are validated when the schema is parsed,
// so encoding a value of an accepted type never fails.
func (s *Schema) MarshalItem(v any) Item {
	rv := s.valueOf(v)
	item := make(Item, len(s.fields))
	for _, f := range s.fields {
		item[f.Name] = s.encodeField(rv, f)
	}
	return item
}

// UnmarshalItem converts item into the value pointed to by out, which must be
// a non-nil pointer to the schema's source type. Fields are resolved in
// declaration order; each matched key is removed from item before its value is
// decoded, so the caller's map is drained as the conversion proceeds and must
// not be reused concurrently with the call.
//
// The conversion is atomic: out is only written once every declared field has
// been resolved. An absent attribute fails with a [MissingFieldError], and an
// undecodable one with an [InvalidFieldError]; the first failing field wins.
// Keys left in item after all fields are consumed are ignored.
func (s *Schema) UnmarshalItem(item Item, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil *%s, got %T", s.goType, out)
	}
	if rv.Elem().Type() != s.goType {
		return fmt.Errorf("unmarshal target must be *%s, got %T", s.goType, out)
	}

	tmp := reflect.New(s.goType).Elem()
	for _, f := range s.fields {
		av, ok := item[f.Name]
		if !ok {
			return &MissingFieldError{Field: f.Name}
		}
		delete(item, f.Name)

		fv := tmp.Field(f.index)
		if err := attributevalue.Unmarshal(av, fv.Addr().Interface()); err != nil {
			return &InvalidFieldError{Field: f.Name, Err: err}
		}
	}

	rv.Elem().Set(tmp)
	return nil
}

// encodeField marshals a single struct field into its attribute value. The
// underlying encoder only fails on types rejected at schema parse time, so a
// failure here means the schema and the value disagree.
func (s *Schema) encodeField(rv reflect.Value, f Field) types.AttributeValue {
	av, err := attributevalue.Marshal(rv.Field(f.index).Interface())
	if err != nil {
		panic(fmt.Sprintf("dynaitem: schema %s: marshal attribute %q: %v", s.name, f.Name, err))
	}
	return av
}

// valueOf resolves v to a struct value of the schema's source type.
func (s *Schema) valueOf(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.goType {
		panic(fmt.Sprintf("dynaitem: schema %s cannot marshal value of type %T", s.name, v))
	}
	return rv
}

// Marshal converts v into an Item using the cached schema for T. The only
// error source is schema derivation; for a type registered via [Register],
// Marshal never fails.
func Marshal[T any](v T) (Item, error) {
	s, err := SchemaOf[T]()
	if err != nil {
		return nil, err
	}
	return s.MarshalItem(v), nil
}

// Unmarshal converts item into out using the cached schema for T. See
// [Schema.UnmarshalItem] for the conversion and error semantics.
func Unmarshal[T any](item Item, out *T) error {
	s, err := SchemaOf[T]()
	if err != nil {
		return err
	}
	return s.UnmarshalItem(item, out)
}
