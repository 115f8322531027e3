package dynamock

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nisimpson/dynaitem"
)

// TableStore is an in-memory stand-in for a DynamoDB table. Items are indexed
// by the hash and range attributes of the record schema the store was built
// for, so hosts can exercise marshal, key extraction, and unmarshal flows
// without AWS. A TableStore is safe for concurrent use.
type TableStore struct {
	mu     sync.RWMutex
	schema *dynaitem.Schema
	items  map[string]dynaitem.Item
}

// NewTableStore creates a store keyed by the hash and range attributes of
// schema. It fails with [dynaitem.ErrNoHashKey] when the schema has no key
// projection, since such records cannot be addressed.
func NewTableStore(schema *dynaitem.Schema) (*TableStore, error) {
	if _, ok := schema.KeySchema(); !ok {
		return nil, &dynaitem.SchemaError{Type: schema.Name(), Err: dynaitem.ErrNoHashKey}
	}
	return &TableStore{
		schema: schema,
		items:  make(map[string]dynaitem.Item),
	}, nil
}

// NewTableStoreFor creates a store for record type T.
func NewTableStoreFor[T any]() (*TableStore, error) {
	schema, err := dynaitem.SchemaOf[T]()
	if err != nil {
		return nil, err
	}
	return NewTableStore(schema)
}

// Put stores a copy of item, replacing any item with the same key attributes.
func (ts *TableStore) Put(item dynaitem.Item) error {
	key, err := ts.keyString(item)
	if err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.items[key] = cloneItem(item)
	return nil
}

// Get returns a copy of the item addressed by the key item, as produced by
// [dynaitem.Schema.MarshalKey]. The returned copy is safe to drain with
// UnmarshalItem.
func (ts *TableStore) Get(key dynaitem.Item) (dynaitem.Item, bool) {
	ks, err := ts.keyString(key)
	if err != nil {
		return nil, false
	}

	ts.mu.RLock()
	defer ts.mu.RUnlock()
	item, ok := ts.items[ks]
	if !ok {
		return nil, false
	}
	return cloneItem(item), true
}

// Delete removes the item addressed by the key item, if present.
func (ts *TableStore) Delete(key dynaitem.Item) {
	ks, err := ts.keyString(key)
	if err != nil {
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.items, ks)
}

// Len returns the number of stored items.
func (ts *TableStore) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.items)
}

// Client returns a [MockClient] whose put, get, and delete expectations are
// wired to the store, so code written against the DynamoDB client can run
// against in-memory state:
//
//	store, _ := dynamock.NewTableStoreFor[Person]()
//	client := store.Client(t)
//
//	item, _ := dynaitem.Marshal(person)
//	client.PutItem(ctx, &dynamodb.PutItemInput{Item: item, TableName: aws.String("people")})
func (ts *TableStore) Client(t *testing.T) *MockClient {
	client := NewMockClient(t)
	client.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		if err := ts.Put(params.Item); err != nil {
			return nil, err
		}
		return &dynamodb.PutItemOutput{}, nil
	}
	client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		item, ok := ts.Get(params.Key)
		if !ok {
			return &dynamodb.GetItemOutput{}, nil
		}
		return &dynamodb.GetItemOutput{Item: item}, nil
	}
	client.DeleteFunc = func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
		ts.Delete(params.Key)
		return &dynamodb.DeleteItemOutput{}, nil
	}
	return client
}

// keyString builds the index key from the item's hash and range attributes.
func (ts *TableStore) keyString(item dynaitem.Item) (string, error) {
	key, _ := ts.schema.KeySchema()

	parts := make([]string, 0, 2)
	for _, name := range key.AttributeNames() {
		av, ok := item[name]
		if !ok {
			return "", fmt.Errorf("item is missing key attribute %q", name)
		}
		parts = append(parts, attributeString(av))
	}
	return strings.Join(parts, "#"), nil
}

// attributeString renders a key attribute value as a string. Only the scalar
// variants DynamoDB allows in primary keys are meaningful here.
func attributeString(av types.AttributeValue) string {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberB:
		return base64.StdEncoding.EncodeToString(tv.Value)
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

func cloneItem(item dynaitem.Item) dynaitem.Item {
	out := make(dynaitem.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
