package dynaitem

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Role identifies the part a field plays in a table's primary key.
type Role string

const (
	RoleNone  Role = ""      // an ordinary attribute
	RoleHash  Role = "hash"  // the partition key component
	RoleRange Role = "range" // the optional sort key component
)

// Field describes a single named attribute of a record schema.
type Field struct {
	Name string       // the attribute name used in items
	Role Role         // the primary key role, if any
	Type reflect.Type // the Go type of the struct field

	index int // struct field index on the source type
}

// Schema is the parsed definition of a record type: its ordered fields, its
// name, and the classification of its primary key components. A Schema is
// parsed once per Go type, cached, and never mutated afterwards; all of its
// methods are safe for concurrent use.
type Schema struct {
	name   string
	goType reflect.Type
	fields []Field

	hashIdx  int // index into fields, or -1
	rangeIdx int // index into fields, or -1

	key *Schema // synthesized key projection, nil when hashIdx < 0
}

// Name returns the record name, derived from the Go type name. Synthesized key
// schemas append a "Key" suffix.
func (s *Schema) Name() string { return s.name }

// Fields returns the schema's fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// AttributeNames returns the attribute names of every field in declaration
// order. Hosts typically use this to build projection inputs.
func (s *Schema) AttributeNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// HashKey returns the field tagged as the hash key, if one exists.
func (s *Schema) HashKey() (Field, bool) {
	if s.hashIdx < 0 {
		return Field{}, false
	}
	return s.fields[s.hashIdx], true
}

// RangeKey returns the field tagged as the range key, if one exists.
func (s *Schema) RangeKey() (Field, bool) {
	if s.rangeIdx < 0 {
		return Field{}, false
	}
	return s.fields[s.rangeIdx], true
}

// ParseSchema parses the struct type t into a Schema, classifying its primary
// key fields. Attribute names come from the first segment of the dynamodbav
// tag, falling back to the Go field name; fields tagged dynamodbav:"-" and
// unexported fields are excluded. Key roles come from the dynaitem tag:
//
//	type Person struct {
//	    ID   string `dynamodbav:"id" dynaitem:"hash"`
//	    Name string `dynamodbav:"name"`
//	}
//
// Parsing fails with a [SchemaError] when t is not a struct, declares no named
// fields, tags more than one field with the same role, tags a non-scalar field
// as a key, maps two fields to the same attribute name, or declares a field
// whose type has no attribute value representation. A type with no hash key parses successfully; it is a plain
// record with no key projection.
func ParseSchema(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		name := "<nil>"
		if t != nil {
			name = t.String()
		}
		return nil, &SchemaError{Type: name, Err: ErrNotStruct}
	}

	s := &Schema{
		name:     t.Name(),
		goType:   t,
		hashIdx:  -1,
		rangeIdx: -1,
	}

	seen := make(map[string]string) // attribute name -> struct field name

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous {
			return nil, &SchemaError{
				Type: s.name,
				Err:  fmt.Errorf("embedded field %s: %w", sf.Name, ErrUnsupportedFieldType),
			}
		}

		name := sf.Name
		if tag, ok := sf.Tag.Lookup("dynamodbav"); ok {
			base := strings.Split(tag, ",")[0]
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}

		if prev, dup := seen[name]; dup {
			return nil, &SchemaError{
				Type: s.name,
				Err:  fmt.Errorf("fields %s and %s both map to attribute %q: %w", prev, sf.Name, name, ErrDuplicateField),
			}
		}
		seen[name] = sf.Name

		if err := checkFieldType(sf.Type); err != nil {
			return nil, &SchemaError{
				Type: s.name,
				Err:  fmt.Errorf("field %s: %w", sf.Name, err),
			}
		}

		role := RoleNone
		switch tag := sf.Tag.Get("dynaitem"); tag {
		case "":
		case string(RoleHash):
			role = RoleHash
		case string(RoleRange):
			role = RoleRange
		default:
			return nil, &SchemaError{
				Type: s.name,
				Err:  fmt.Errorf("field %s tagged %q: %w", sf.Name, tag, ErrUnknownRole),
			}
		}

		if role != RoleNone {
			if err := checkKeyFieldType(sf.Type); err != nil {
				return nil, &SchemaError{
					Type: s.name,
					Err:  fmt.Errorf("field %s: %w", sf.Name, err),
				}
			}
		}

		idx := len(s.fields)
		s.fields = append(s.fields, Field{Name: name, Role: role, Type: sf.Type, index: i})

		switch role {
		case RoleHash:
			if s.hashIdx >= 0 {
				return nil, &SchemaError{Type: s.name, Err: ErrDuplicateHashKey}
			}
			s.hashIdx = idx
		case RoleRange:
			if s.rangeIdx >= 0 {
				return nil, &SchemaError{Type: s.name, Err: ErrDuplicateRangeKey}
			}
			s.rangeIdx = idx
		}
	}

	if len(s.fields) == 0 {
		return nil, &SchemaError{Type: s.name, Err: ErrNoNamedFields}
	}

	s.key = synthesizeKey(s)
	return s, nil
}

// checkFieldType rejects types that have no attribute value representation.
// Validating here keeps [Schema.MarshalItem] total: every value of an accepted
// type marshals without error.
func checkFieldType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer,
		reflect.Complex64, reflect.Complex128:
		return fmt.Errorf("%s: %w", t.Kind(), ErrUnsupportedFieldType)
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return checkFieldType(t.Elem())
	case reflect.Map:
		if err := checkMapKeyType(t.Key()); err != nil {
			return err
		}
		return checkFieldType(t.Elem())
	default:
		return nil
	}
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// checkMapKeyType enforces the attribute value map key contract: keys must be
// strings, numbers, booleans, or implement encoding.TextMarshaler.
func checkMapKeyType(t reflect.Type) error {
	if t.Implements(textMarshalerType) {
		return nil
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	default:
		return fmt.Errorf("map key %s: %w", t.Kind(), ErrUnsupportedFieldType)
	}
}

// checkKeyFieldType restricts hash and range fields to the scalar types
// DynamoDB allows in primary keys: strings, numbers, and binary.
func checkKeyFieldType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
	}
	return fmt.Errorf("%s cannot be a key attribute: %w", t, ErrUnsupportedFieldType)
}

// Schemas are parsed once per Go type and shared between callers.
var (
	schemaCacheMu sync.RWMutex
	schemaCache   = make(map[reflect.Type]*Schema)
)

func schemaFor(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	schemaCacheMu.RLock()
	s, ok := schemaCache[t]
	schemaCacheMu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := ParseSchema(t)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if cached, ok := schemaCache[t]; ok {
		return cached, nil
	}
	schemaCache[t] = s
	return s, nil
}

// SchemaOf returns the cached schema for T, parsing it on first use.
func SchemaOf[T any]() (*Schema, error) {
	return schemaFor(reflect.TypeOf((*T)(nil)).Elem())
}

// Register parses and caches the schema for T. Calling Register for every
// record type during program initialization surfaces definition errors before
// any item is ever processed:
//
//	func init() {
//	    dynaitem.MustRegister[Person]()
//	    dynaitem.MustRegister[Order]()
//	}
func Register[T any]() (*Schema, error) {
	return SchemaOf[T]()
}

// MustRegister is like [Register] but panics on definition errors. It is
// intended for use in package init functions.
func MustRegister[T any]() *Schema {
	s, err := Register[T]()
	if err != nil {
		panic(fmt.Sprintf("dynaitem: %v", err))
	}
	return s
}
