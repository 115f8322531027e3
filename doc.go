// Package dynaitem derives DynamoDB item mappings from struct definitions at
// runtime.
//
// Given a struct whose fields carry attribute names and primary key roles in
// their tags, dynaitem produces an invertible mapping between the struct and
// the generic attribute value map (Item), a minimal key projection for point
// lookups and deletes, and a closed-set codec for enumerated types. The
// library performs no I/O; the host's DynamoDB client consumes the generated
// items.
//
// # Schemas
//
// Attribute names come from the dynamodbav tag, as with the AWS SDK
// attributevalue package. Primary key roles come from the dynaitem tag:
//
//	type Person struct {
//	    ID   string `dynamodbav:"id" dynaitem:"hash"`
//	    Name string `dynamodbav:"name"`
//	}
//
// A schema is parsed once per type and cached. At most one field may carry
// each role; violations are definition errors raised when the schema is
// parsed, so register your record types during initialization to fail fast:
//
//	func init() {
//	    dynaitem.MustRegister[Person]()
//	}
//
// # Items
//
// Marshal converts a record into a fresh item containing every declared field
// exactly once, and never fails for a registered type. Unmarshal drains the
// item as it resolves fields in declaration order, failing on the first
// absent or undecodable attribute and ignoring unknown keys:
//
//	item, _ := dynaitem.Marshal(Person{ID: "123", Name: "Ann"})
//	// item: {"id": S("123"), "name": S("Ann")}
//
//	var p Person
//	err := dynaitem.Unmarshal(item, &p)
//
// # Key Projection
//
// Every schema with a hash key field synthesizes a key schema named
// "<Name>Key" over the hash field and optional range field. The projected
// fields keep their roles, so the key schema is a first-class schema that
// classifies and maps exactly like its parent:
//
//	key, _ := dynaitem.MarshalKey(person)
//	// key: {"id": S("123")}
//
// Hosts that prefer a concrete key type can declare one with the same tags;
// it registers and maps through the identical machinery.
//
// # Enums
//
// Enum converts an enumerated type's variants to and from a string attribute.
// Implementing the attributevalue marshaler interfaces on the enum type wires
// the codec into item mapping:
//
//	var statusEnum = dynaitem.MustNewEnum(
//	    dynaitem.Variant(StatusActive, "Active"),
//	    dynaitem.Variant(StatusClosed, "Closed"),
//	)
//
//	func (s Status) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
//	    return statusEnum.Encode(s), nil
//	}
//
// # Errors
//
// Definition errors (duplicate roles, non-struct types, unusable fields) are
// raised once per type and wrapped in a SchemaError. Conversion errors
// (MissingFieldError, InvalidFieldError) are raised per call, always name the
// offending attribute, and short-circuit the whole conversion; a record is
// produced wholly or not at all. All errors match their sentinels via
// errors.Is.
//
// # Testing
//
// The dynamock subpackage provides an expectation-based mock client, an
// in-memory table store keyed by a schema's hash and range attributes, JSON
// seeding helpers, and DynamoDB Local utilities.
package dynaitem
