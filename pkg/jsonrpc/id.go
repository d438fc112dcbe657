package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ID is a request correlation id. The wire protocol allows either a
// number or a string; ID keeps value semantics so it can key the
// pending-request map. The zero ID is the numeric id 0.
type ID struct {
	name   string
	number int64
}

// NewIntID returns a numeric ID.
func NewIntID(v int64) ID { return ID{number: v} }

// NewNamedID returns a string ID with the given value.
func NewNamedID(name string) ID { return ID{name: name} }

// NewStringID returns a fresh, collision-free string ID.
func NewStringID() ID { return ID{name: uuid.NewString()} }

// IsString reports whether the ID carries a string value.
func (id ID) IsString() bool { return id.name != "" }

// String renders the ID for logging: string ids quoted, numeric ids bare.
func (id ID) String() string {
	if id.name != "" {
		return strconv.Quote(id.name)
	}

	return "#" + strconv.FormatInt(id.number, 10)
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.name != "" {
		return json.Marshal(id.name)
	}

	return json.Marshal(id.number)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID{}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &id.name)
	}
	if err := json.Unmarshal(data, &id.number); err != nil {
		return fmt.Errorf("invalid request id %s: %w", data, err)
	}

	return nil
}
