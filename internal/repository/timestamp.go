package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// layouts the sqlite driver or CURRENT_TIMESTAMP may hand back
var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timestamp scans TIMESTAMP columns whether the driver returns time.Time or text
type timestamp struct {
	dst *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.dst = time.Time{}
		return nil
	case time.Time:
		*ts.dst = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (ts timestamp) parse(raw string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*ts.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: unrecognised value %q", raw)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// optionalText scans a nullable TEXT column into a *string
type optionalText struct {
	dst **string
}

func (o optionalText) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o.dst = nil
	case string:
		*o.dst = &v
	case []byte:
		text := string(v)
		*o.dst = &text
	default:
		return fmt.Errorf("scan text: unsupported type %T", src)
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
