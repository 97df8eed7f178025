package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SeatValue is a seat field sent either as a JSON string or as a bare scalar
// such as a number. Numbers keep their literal text, so 12 and "12" are the
// same seat.
type SeatValue string

// Seat wraps a present seat field.
func Seat(v string) Optional[SeatValue] {
	return Some(SeatValue(v))
}

func (v SeatValue) String() string {
	return string(v)
}

func (v *SeatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("seat value: empty input")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SeatValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = SeatValue(fmt.Sprint(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("seat value: expected string or number, got %s", data)
		}
		*v = SeatValue(n.String())
	}

	return nil
}
