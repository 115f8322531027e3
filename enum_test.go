package dynaitem

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type orderStatus int

const (
	statusPending orderStatus = iota
	statusShipped
	statusDelivered
)

var orderStatusEnum = MustNewEnum(
	Variant(statusPending, "Pending"),
	Variant(statusShipped, "Shipped"),
	Variant(statusDelivered, "Delivered"),
)

func (s orderStatus) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return orderStatusEnum.Encode(s), nil
}

func (s *orderStatus) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	v, err := orderStatusEnum.Decode(av)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func TestEnumCodec(t *testing.T) {
	t.Run("round trips every variant", func(t *testing.T) {
		for _, status := range []orderStatus{statusPending, statusShipped, statusDelivered} {
			got, err := orderStatusEnum.Decode(orderStatusEnum.Encode(status))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != status {
				t.Errorf("Expected %v, got %v", status, got)
			}
		}
	})

	t.Run("encodes the variant label", func(t *testing.T) {
		av := orderStatusEnum.Encode(statusShipped)
		sv, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			t.Fatalf("Expected a string attribute, got %T", av)
		}
		if sv.Value != "Shipped" {
			t.Errorf("Expected label Shipped, got %q", sv.Value)
		}
	})

	t.Run("unknown label fails with invalid format", func(t *testing.T) {
		_, err := orderStatusEnum.Decode(&types.AttributeValueMemberS{Value: "Teleported"})
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("non string attribute fails with invalid type", func(t *testing.T) {
		_, err := orderStatusEnum.Decode(&types.AttributeValueMemberN{Value: "1"})
		if !errors.Is(err, ErrInvalidType) {
			t.Errorf("Expected ErrInvalidType, got %v", err)
		}
	})

	t.Run("labels preserve declaration order", func(t *testing.T) {
		want := []string{"Pending", "Shipped", "Delivered"}
		got := orderStatusEnum.Labels()
		if len(got) != len(want) {
			t.Fatalf("Expected %d labels, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Label %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("encoding an undeclared value panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected Encode to panic")
			}
		}()
		orderStatusEnum.Encode(orderStatus(42))
	})
}

func TestNewEnumErrors(t *testing.T) {
	t.Run("duplicate label", func(t *testing.T) {
		_, err := NewEnum(
			Variant(statusPending, "Pending"),
			Variant(statusShipped, "Pending"),
		)
		if !errors.Is(err, ErrDuplicateVariant) {
			t.Errorf("Expected ErrDuplicateVariant, got %v", err)
		}
	})

	t.Run("duplicate value", func(t *testing.T) {
		_, err := NewEnum(
			Variant(statusPending, "Pending"),
			Variant(statusPending, "AlsoPending"),
		)
		if !errors.Is(err, ErrDuplicateVariant) {
			t.Errorf("Expected ErrDuplicateVariant, got %v", err)
		}
	})
}

func TestNewStringEnum(t *testing.T) {
	type color string
	e, err := NewStringEnum[color]("red", "green", "blue")
	if err != nil {
		t.Fatalf("NewStringEnum failed: %v", err)
	}

	av := e.Encode("green")
	if sv := av.(*types.AttributeValueMemberS); sv.Value != "green" {
		t.Errorf("Expected identity label green, got %q", sv.Value)
	}

	got, err := e.Decode(&types.AttributeValueMemberS{Value: "blue"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "blue" {
		t.Errorf("Expected blue, got %v", got)
	}
}

func TestEnumFieldMapping(t *testing.T) {
	type shipment struct {
		ID     string      `dynamodbav:"id" dynaitem:"hash"`
		Status orderStatus `dynamodbav:"status"`
	}

	t.Run("round trips through item mapping", func(t *testing.T) {
		want := shipment{ID: "S1", Status: statusShipped}
		item, err := Marshal(want)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		if sv := item["status"].(*types.AttributeValueMemberS); sv.Value != "Shipped" {
			t.Errorf("Expected status attribute S(Shipped), got %q", sv.Value)
		}

		var got shipment
		if err := Unmarshal(item, &got); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if got != want {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
	})

	t.Run("invalid label surfaces as an invalid field", func(t *testing.T) {
		item := Item{
			"id":     &types.AttributeValueMemberS{Value: "S1"},
			"status": &types.AttributeValueMemberS{Value: "Teleported"},
		}

		var got shipment
		err := Unmarshal(item, &got)

		var invalid *InvalidFieldError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidFieldError, got %v", err)
		}
		if invalid.Field != "status" {
			t.Errorf("Expected field status, got %q", invalid.Field)
		}
		if !errors.Is(err, ErrInvalidFormat) {
			t.Error("Expected the codec failure to be preserved in the chain")
		}
	})
}
