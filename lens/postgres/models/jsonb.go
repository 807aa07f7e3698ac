// File: jsonb.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/PrivacyLens/go-api/lens"
)

// JSONB stores an opaque key-value map in a jsonb column.
type JSONB map[string]any

// Value implements driver.Valuer by serializing the map to JSON.
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for jsonb columns.
func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	data, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, j)
}

// StringList stores an ordered list of strings in a jsonb column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	data, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, l)
}

// SnapshotList stores a site's score history in a jsonb column, ordered
// oldest first.
type SnapshotList []lens.Snapshot

// Value implements driver.Valuer.
func (s SnapshotList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]lens.Snapshot{})
	}
	return json.Marshal([]lens.Snapshot(s))
}

// Scan implements sql.Scanner.
func (s *SnapshotList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	data, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
