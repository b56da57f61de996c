package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The remote API is loose about scalar types: ids, coordinates and zip codes
// arrive as numbers, numeric strings, empty strings or null depending on the
// endpoint. The Flex types below decode all of those forms.

// ID is a server identifier kept in its decimal string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// FlexString decodes a JSON string, number or null into a string.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	v, err := scalarString(b)
	if err != nil {
		return err
	}
	*s = FlexString(v)
	return nil
}

func (s FlexString) String() string { return string(s) }

// FlexFloat decodes a JSON number, numeric string, empty string or null.
// Valid is false for the empty forms and for values that are not numbers;
// the latter keep their text in Raw so one bad row does not fail a list.
type FlexFloat struct {
	Value float64
	Valid bool
	Raw   string
}

// Float returns a set FlexFloat.
func Float(v float64) FlexFloat { return FlexFloat{Value: v, Valid: true} }

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		*f = FlexFloat{Raw: string(bytes.TrimSpace(b))}
		return nil
	}
	if s == "" {
		*f = FlexFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = FlexFloat{Raw: s}
		return nil
	}
	*f = FlexFloat{Value: v, Valid: true}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func scalarString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// FormatCoord renders a coordinate the way the API expects it in form fields.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
