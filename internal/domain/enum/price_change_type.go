package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PriceChangeType distinguishes which of a product's two prices changed
type PriceChangeType int

const (
	PriceChangeSelling PriceChangeType = 0
	PriceChangeCost    PriceChangeType = 1
)

func (t PriceChangeType) String() string {
	names := [...]string{"Selling", "Cost"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Selling"
	}
	return names[t]
}

func (t PriceChangeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PriceChangeType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PriceChangeType(i)
		return nil
	}
	switch str {
	case "Selling":
		*t = PriceChangeSelling
	case "Cost":
		*t = PriceChangeCost
	}
	return nil
}

func (t PriceChangeType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PriceChangeType) Scan(value interface{}) error {
	if value == nil {
		*t = PriceChangeSelling
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PriceChangeType(v)
	case int:
		*t = PriceChangeType(v)
	}
	return nil
}
