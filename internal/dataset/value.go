/**
 * @description
 * Typed cell values for the dataset table model.
 * Every coercion is a fallible parse that degrades to the Missing sentinel
 * instead of returning an error, so per-column failure counts stay observable
 * without breaking the pipeline's fail-soft contract.
 *
 * @dependencies
 * - standard "strconv", "time", "encoding/json"
 */

package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the cell types a table can hold.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindTime
)

// Value is a single table cell. The zero value is Missing.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
}

// Missing returns the missing-value sentinel.
func Missing() Value {
	return Value{Kind: KindMissing}
}

// String wraps a string cell.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Timestamp wraps a date/time cell.
func Timestamp(t time.Time) Value {
	return Value{Kind: KindTime, Time: t}
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// AsNumber coerces the cell to a float64. String cells are parsed; parse
// failures, missing cells, and time cells report ok=false.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString renders the cell for display and row fingerprinting.
// Missing cells report ok=false.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	case KindTime:
		return v.Time.Format(time.RFC3339), true
	default:
		return "", false
	}
}

// Equal compares two cells by kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindMissing:
		return true
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindTime:
		return v.Time.Equal(o.Time)
	}
	return false
}

// valueJSON is the tagged wire form used for cache and snapshot payloads.
// A plain JSON encoding would lose the string/time distinction on round-trip.
type valueJSON struct {
	K string  `json:"k"`
	S string  `json:"s,omitempty"`
	N float64 `json:"n,omitempty"`
	T string  `json:"t,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(valueJSON{K: "s", S: v.Str})
	case KindNumber:
		return json.Marshal(valueJSON{K: "n", N: v.Num})
	case KindTime:
		return json.Marshal(valueJSON{K: "t", T: v.Time.Format(time.RFC3339Nano)})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Missing()
		return nil
	}
	var w valueJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.K {
	case "s":
		*v = String(w.S)
	case "n":
		*v = Number(w.N)
	case "t":
		t, err := time.Parse(time.RFC3339Nano, w.T)
		if err != nil {
			return fmt.Errorf("invalid time cell %q: %w", w.T, err)
		}
		*v = Timestamp(t)
	default:
		return fmt.Errorf("unknown cell kind %q", w.K)
	}
	return nil
}

// Interface converts the cell to a plain Go value for API responses.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindTime:
		return v.Time.Format(time.RFC3339)
	default:
		return nil
	}
}
