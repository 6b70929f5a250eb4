package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusCompleted OrderStatus = 1
	OrderStatusCancelled OrderStatus = 2
	OrderStatusRefunded  OrderStatus = 3
)

func (s OrderStatus) String() string {
	names := [...]string{"Pending", "Completed", "Cancelled", "Refunded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// ParseOrderStatus maps the wire form ("pending", "completed",
// "cancelled", "refunded") to its enum value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch s {
	case "pending":
		return OrderStatusPending, true
	case "completed":
		return OrderStatusCompleted, true
	case "cancelled":
		return OrderStatusCancelled, true
	case "refunded":
		return OrderStatusRefunded, true
	}
	return OrderStatusPending, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Completed":
		*s = OrderStatusCompleted
	case "Cancelled":
		*s = OrderStatusCancelled
	case "Refunded":
		*s = OrderStatusRefunded
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
