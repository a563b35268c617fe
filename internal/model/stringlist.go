package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a list of free-text tags (skills, causes) stored as a JSON
// text column. Clients are loose about the shape they send, so decoding
// normalizes: JSON null becomes an empty list, a bare string becomes a
// single-element list, and an array is taken verbatim.
type StringList []string

// UnmarshalJSON applies the normalization rules.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		if asList == nil {
			asList = []string{}
		}
		*l = asList
		return nil
	}

	var asScalar string
	if err := json.Unmarshal(data, &asScalar); err == nil {
		*l = StringList{asScalar}
		return nil
	}

	return fmt.Errorf("string list: expected string, array of strings, or null, got %s", data)
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Value serializes the list for storage.
func (l StringList) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the stored JSON text. NULL scans to an empty list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("string list: cannot scan %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return l.UnmarshalJSON(data)
}
