package dynaitem

import "fmt"

// synthesizeKey builds the key projection for s: a schema named "<Name>Key"
// containing exactly the hash field and, when present, the range field. The
// projected fields retain their role tags, so classifying the key schema
// re-derives the same hash and range keys as the parent. Returns nil when s
// has no hash field.
func synthesizeKey(s *Schema) *Schema {
	if s.hashIdx < 0 {
		return nil
	}

	key := &Schema{
		name:     s.name + "Key",
		goType:   s.goType,
		hashIdx:  0,
		rangeIdx: -1,
	}
	key.fields = append(key.fields, s.fields[s.hashIdx])
	if s.rangeIdx >= 0 {
		key.fields = append(key.fields, s.fields[s.rangeIdx])
		key.rangeIdx = 1
	}

	// Every field of a key schema is a key field, so projecting it again is
	// the identity.
	key.key = key
	return key
}

// KeySchema returns the synthesized key projection of s: a first-class schema
// over the hash field and optional range field, sharing the parent's source
// type. It reports false when s has no hash field, in which case the record is
// non-keyed and no projection exists.
func (s *Schema) KeySchema() (*Schema, bool) {
	if s.key == nil {
		return nil, false
	}
	return s.key, true
}

// MarshalKey converts v into the minimal key Item used for point lookups and
// deletes. The result contains exactly one entry for a hash-only schema and
// two for a hash-and-range schema, and equals the key schema's MarshalItem
// applied to v. MarshalKey panics when s has no hash field; use [KeySchema] to
// test for one first.
func (s *Schema) MarshalKey(v any) Item {
	key, ok := s.KeySchema()
	if !ok {
		panic(fmt.Sprintf("dynaitem: schema %s has no hash key", s.name))
	}
	return key.MarshalItem(v)
}

// KeySchemaOf returns the key projection for T, parsing the schema on first
// use. It fails with [ErrNoHashKey] when T has no field tagged as the hash
// key.
func KeySchemaOf[T any]() (*Schema, error) {
	s, err := SchemaOf[T]()
	if err != nil {
		return nil, err
	}
	key, ok := s.KeySchema()
	if !ok {
		return nil, &SchemaError{Type: s.name, Err: ErrNoHashKey}
	}
	return key, nil
}

// MarshalKey converts v into its minimal key Item using the cached schema for
// T. It fails with [ErrNoHashKey] when T has no field tagged as the hash key.
func MarshalKey[T any](v T) (Item, error) {
	key, err := KeySchemaOf[T]()
	if err != nil {
		return nil, err
	}
	return key.MarshalItem(v), nil
}
