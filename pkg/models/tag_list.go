package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TagList stores an ordered set of tags as a single comma-separated
// text column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return strings.Join(t, ","), nil
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}

	if raw == "" {
		*t = nil
		return nil
	}

	*t = strings.Split(raw, ",")
	return nil
}
