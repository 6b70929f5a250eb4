package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an order was paid
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodCard   PaymentMethod = 1
	PaymentMethodMobile PaymentMethod = 2
	PaymentMethodOther  PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "Card", "Mobile", "Other"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Other"
	}
	return names[m]
}

// Label is the customer-facing name printed on documents.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodMobile:
		return "Mobile Payment"
	default:
		return m.String()
	}
}

// ParsePaymentMethod maps the wire form ("cash", "card", "mobile",
// "other") to its enum value.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "cash":
		return PaymentMethodCash, true
	case "card":
		return PaymentMethodCard, true
	case "mobile":
		return PaymentMethodMobile, true
	case "other":
		return PaymentMethodOther, true
	}
	return PaymentMethodCash, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "Card":
		*m = PaymentMethodCard
	case "Mobile":
		*m = PaymentMethodMobile
	case "Other":
		*m = PaymentMethodOther
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
