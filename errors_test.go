package dynaitem

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "email"}

	expected := `attribute "email" not found in item`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrMissingField) {
		t.Error("MissingFieldError should match ErrMissingField")
	}
	if !IsMissingField(err) {
		t.Error("IsMissingField should return true for MissingFieldError")
	}
	if IsInvalidField(err) {
		t.Error("IsInvalidField should return false for MissingFieldError")
	}
}

func TestInvalidFieldError(t *testing.T) {
	cause := errors.New("cannot decode bool into int")
	err := &InvalidFieldError{Field: "age", Err: cause}

	expected := `attribute "age": cannot decode bool into int`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrInvalidField) {
		t.Error("InvalidFieldError should match ErrInvalidField")
	}
	if !errors.Is(err, cause) {
		t.Error("InvalidFieldError should unwrap to its cause")
	}
	if !IsInvalidField(err) {
		t.Error("IsInvalidField should return true for InvalidFieldError")
	}
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{Type: "Person", Err: ErrDuplicateHashKey}

	expected := "schema Person: duplicate hash key"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrDuplicateHashKey) {
		t.Error("SchemaError should unwrap to its definition error")
	}

	wrapped := fmt.Errorf("registering records: %w", err)
	var serr *SchemaError
	if !errors.As(wrapped, &serr) {
		t.Error("SchemaError should be recoverable from a wrapped chain")
	}
}
