package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies an entity. The remote API may send ids as JSON strings or
// numbers; both decode to the same ID.
type ID string

// ParseID accepts the textual id taken from a route or the command line.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("id is required")
	}
	return ID(s), nil
}

// FromInt converts a numeric route parameter to an ID.
func FromInt(n int) ID {
	return ID(strconv.Itoa(n))
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON implements json.Unmarshaler
// Supports: "abc", 12, null
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into ID", string(data))
}
