package examples

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nisimpson/dynaitem"
)

// Fixtures for the end-to-end e-commerce tests. Orders are addressed by
// customer and order id; the status field round trips through a closed
// string enum.

type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusShipped
	StatusDelivered
)

var orderStatuses = dynaitem.MustNewEnum(
	dynaitem.Variant(StatusPending, "pending"),
	dynaitem.Variant(StatusShipped, "shipped"),
	dynaitem.Variant(StatusDelivered, "delivered"),
)

func (s OrderStatus) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return orderStatuses.Encode(s), nil
}

func (s *OrderStatus) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	v, err := orderStatuses.Decode(av)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type Order struct {
	CustomerID string      `dynamodbav:"customer_id" dynaitem:"hash"`
	OrderID    string      `dynamodbav:"order_id" dynaitem:"range"`
	Status     OrderStatus `dynamodbav:"status"`
	Total      int64       `dynamodbav:"total"`
	Products   []string    `dynamodbav:"products"`
}

type Customer struct {
	ID    string `dynamodbav:"id" dynaitem:"hash"`
	Email string `dynamodbav:"email"`
}

// orderManifest pins the wire layout of both record types.
const orderManifest = `
records:
  - name: Order
    fields:
      - name: customer_id
        kind: string
        role: hash
      - name: order_id
        kind: string
        role: range
      - name: status
      - name: total
        kind: int64
      - name: products
  - name: Customer
    fields:
      - name: id
        kind: string
        role: hash
      - name: email
        kind: string
`
