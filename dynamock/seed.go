package dynamock

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nisimpson/dynaitem"
)

// SeedFromJSON reads a JSON array of records from r, marshals each through
// the dynaitem schema for T, and stores the resulting items. Returns the
// number of items stored.
//
// The JSON field names must match the record's json tags (or exported field
// names), as with encoding/json:
//
//	store, _ := dynamock.NewTableStoreFor[Person]()
//	count, err := dynamock.SeedFromJSON[Person](store, strings.NewReader(`[
//	    {"ID": "123", "Name": "Ann"},
//	    {"ID": "456", "Name": "Ben"}
//	]`))
func SeedFromJSON[T any](ts *TableStore, r io.Reader) (int, error) {
	var records []T
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to parse JSON document: %w", err)
	}

	count := 0
	for i, record := range records {
		item, err := dynaitem.Marshal(record)
		if err != nil {
			return count, fmt.Errorf("failed to marshal record at index %d: %w", i, err)
		}
		if err := ts.Put(item); err != nil {
			return count, fmt.Errorf("failed to seed record at index %d: %w", i, err)
		}
		count++
	}

	return count, nil
}

// Seed marshals each record through the dynaitem schema for T and stores the
// resulting items. Returns the number of items stored.
func Seed[T any](ts *TableStore, records ...T) (int, error) {
	count := 0
	for i, record := range records {
		item, err := dynaitem.Marshal(record)
		if err != nil {
			return count, fmt.Errorf("failed to marshal record at index %d: %w", i, err)
		}
		if err := ts.Put(item); err != nil {
			return count, fmt.Errorf("failed to seed record at index %d: %w", i, err)
		}
		count++
	}
	return count, nil
}
