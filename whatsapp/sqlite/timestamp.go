package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// layouts the bridge and sqlite drivers are known to write
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// timestamp scans a nullable TIMESTAMP column whatever its storage class
type timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = timestamp{}
		return nil
	case time.Time:
		*t = timestamp{Time: v, Valid: true}
		return nil
	case int64:
		*t = timestamp{Time: time.Unix(v, 0).UTC(), Valid: true}
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp{Time: parsed, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}
