// Package dynamock provides testing utilities for the dynaitem library.
//
// This package includes:
//   - Expectation-based mock DynamoDB client for unit testing
//   - In-memory table store backed by record schemas
//   - Test data seeding helpers
//   - Local DynamoDB integration utilities
//
// # Mock Client
//
// The MockClient provides an expectation-based mock implementation where you
// set expectations for specific operations:
//
//	mock := dynamock.NewMockClient(t)
//
//	// Set expectation for PutItem
//	mock.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
//		// Verify the operation parameters
//		return &dynamodb.PutItemOutput{}, nil
//	}
//
//	item, _ := dynaitem.Marshal(person)
//	_, err := mock.PutItem(ctx, &dynamodb.PutItemInput{
//		TableName: aws.String("people"),
//		Item:      item,
//	})
//
// Any operation without an expectation fails the test.
//
// # Table Store
//
// TableStore is an in-memory table keyed by a record schema. Items are stored
// under their projected key attributes, so puts overwrite and gets and deletes
// address items exactly as DynamoDB would:
//
//	store, _ := dynamock.NewTableStoreFor[Person]()
//	store.Put(item)
//	got, ok := store.Get(key)
//
// A store can back a MockClient so code under test talks to a working
// fake table:
//
//	client := store.Client(t)
//	_, err := client.PutItem(ctx, &dynamodb.PutItemInput{Item: item})
//
// # Seeding
//
// Seed helpers marshal Go records straight into a store:
//
//	n, err := dynamock.Seed(store, person1, person2)
//	n, err = dynamock.SeedFromJSON[Person](store, jsonFile)
//
// # Local DynamoDB
//
// For integration testing, the package provides utilities to work with
// local DynamoDB instances:
//
//	client := dynamock.NewLocalClient(8000)
//
//	local := dynamock.NewLocalDynamoDB(8000)
//	if local.IsAvailable(ctx) {
//		schema, _ := dynaitem.SchemaOf[Person]()
//		err := local.CreateTableFor(ctx, "people", schema)
//		// ... run tests
//		err = local.DeleteTable(ctx, "people")
//	}
//
// Table key schemas are derived from record schemas, so the table a test
// creates always matches the items the library generates.
package dynamock
