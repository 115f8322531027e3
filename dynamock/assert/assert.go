// Package assert provides fluent assertion utilities for testing dynaitem
// schemas and the items they generate. It makes tests more readable by
// providing expressive assertion methods.
//
// # Usage
//
//	import "github.com/nisimpson/dynaitem/dynamock/assert"
//
//	// Assert on a generated item
//	assert.Item(t, item).
//		HasCount(2).
//		HasString("id", "123").
//		HasString("name", "Ann")
//
//	// Assert on a record schema
//	assert.Schema(t, schema).
//		HasName("Person").
//		HasHashKey("id").
//		HasAttributes("id", "name")
package assert

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nisimpson/dynaitem"
)

// ItemAssertion provides fluent assertions for a single DynamoDB item.
type ItemAssertion struct {
	t    *testing.T
	item dynaitem.Item
}

// Item creates a new ItemAssertion for the given item.
func Item(t *testing.T, item dynaitem.Item) *ItemAssertion {
	t.Helper()
	return &ItemAssertion{t: t, item: item}
}

// HasCount asserts that the item has the expected number of attributes.
func (a *ItemAssertion) HasCount(expected int) *ItemAssertion {
	a.t.Helper()
	if len(a.item) != expected {
		a.t.Errorf("expected %d attributes, got %d", expected, len(a.item))
	}
	return a
}

// IsEmpty asserts that the item has no attributes.
func (a *ItemAssertion) IsEmpty() *ItemAssertion {
	a.t.Helper()
	return a.HasCount(0)
}

// HasAttribute asserts that the item contains the named attribute.
func (a *ItemAssertion) HasAttribute(name string) *ItemAssertion {
	a.t.Helper()
	if _, ok := a.item[name]; !ok {
		a.t.Errorf("expected attribute %q to be present", name)
	}
	return a
}

// LacksAttribute asserts that the item does not contain the named attribute.
func (a *ItemAssertion) LacksAttribute(name string) *ItemAssertion {
	a.t.Helper()
	if _, ok := a.item[name]; ok {
		a.t.Errorf("expected attribute %q to be absent", name)
	}
	return a
}

// HasString asserts that the named attribute is a string with the expected value.
func (a *ItemAssertion) HasString(name, expected string) *ItemAssertion {
	a.t.Helper()
	av, ok := a.item[name]
	if !ok {
		a.t.Errorf("expected attribute %q to be present", name)
		return a
	}
	sv, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		a.t.Errorf("expected attribute %q to be a string, got %T", name, av)
		return a
	}
	if sv.Value != expected {
		a.t.Errorf("expected attribute %q = %q, got %q", name, expected, sv.Value)
	}
	return a
}

// HasNumber asserts that the named attribute is a number with the expected
// string representation.
func (a *ItemAssertion) HasNumber(name, expected string) *ItemAssertion {
	a.t.Helper()
	av, ok := a.item[name]
	if !ok {
		a.t.Errorf("expected attribute %q to be present", name)
		return a
	}
	nv, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		a.t.Errorf("expected attribute %q to be a number, got %T", name, av)
		return a
	}
	if nv.Value != expected {
		a.t.Errorf("expected attribute %q = %s, got %s", name, expected, nv.Value)
	}
	return a
}

// HasBool asserts that the named attribute is a boolean with the expected value.
func (a *ItemAssertion) HasBool(name string, expected bool) *ItemAssertion {
	a.t.Helper()
	av, ok := a.item[name]
	if !ok {
		a.t.Errorf("expected attribute %q to be present", name)
		return a
	}
	bv, ok := av.(*types.AttributeValueMemberBOOL)
	if !ok {
		a.t.Errorf("expected attribute %q to be a boolean, got %T", name, av)
		return a
	}
	if bv.Value != expected {
		a.t.Errorf("expected attribute %q = %v, got %v", name, expected, bv.Value)
	}
	return a
}

// SchemaAssertion provides fluent assertions for a record schema.
type SchemaAssertion struct {
	t      *testing.T
	schema *dynaitem.Schema
}

// Schema creates a new SchemaAssertion for the given schema.
func Schema(t *testing.T, schema *dynaitem.Schema) *SchemaAssertion {
	t.Helper()
	if schema == nil {
		t.Fatal("schema is nil")
	}
	return &SchemaAssertion{t: t, schema: schema}
}

// HasName asserts the schema's record name.
func (a *SchemaAssertion) HasName(expected string) *SchemaAssertion {
	a.t.Helper()
	if got := a.schema.Name(); got != expected {
		a.t.Errorf("expected schema name %q, got %q", expected, got)
	}
	return a
}

// HasHashKey asserts that the schema's hash key maps to the given attribute.
func (a *SchemaAssertion) HasHashKey(attribute string) *SchemaAssertion {
	a.t.Helper()
	field, ok := a.schema.HashKey()
	if !ok {
		a.t.Errorf("expected hash key %q, schema has none", attribute)
		return a
	}
	if field.Name != attribute {
		a.t.Errorf("expected hash key %q, got %q", attribute, field.Name)
	}
	return a
}

// HasRangeKey asserts that the schema's range key maps to the given attribute.
func (a *SchemaAssertion) HasRangeKey(attribute string) *SchemaAssertion {
	a.t.Helper()
	field, ok := a.schema.RangeKey()
	if !ok {
		a.t.Errorf("expected range key %q, schema has none", attribute)
		return a
	}
	if field.Name != attribute {
		a.t.Errorf("expected range key %q, got %q", attribute, field.Name)
	}
	return a
}

// HasNoRangeKey asserts that the schema has no range key.
func (a *SchemaAssertion) HasNoRangeKey() *SchemaAssertion {
	a.t.Helper()
	if field, ok := a.schema.RangeKey(); ok {
		a.t.Errorf("expected no range key, got %q", field.Name)
	}
	return a
}

// HasAttributes asserts the schema's attribute names in declaration order.
func (a *SchemaAssertion) HasAttributes(names ...string) *SchemaAssertion {
	a.t.Helper()
	got := a.schema.AttributeNames()
	if len(got) != len(names) {
		a.t.Errorf("expected %d attributes, got %d", len(names), len(got))
		return a
	}
	for i, name := range names {
		if got[i] != name {
			a.t.Errorf("expected attribute %d to be %q, got %q", i, name, got[i])
		}
	}
	return a
}
