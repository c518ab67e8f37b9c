package sqlite

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeLayout ancho fijo en UTC para que comparar textos equivalga a comparar instantes.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqlTime time.Time guardado como TEXT.
type sqlTime time.Time

func (t sqlTime) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(timeLayout), nil
}

func (t *sqlTime) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = sqlTime(v.UTC())
		return nil
	default:
		return fmt.Errorf("sqlite: no se puede leer %T como fecha", src)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("sqlite: fecha %q: %w", s, err)
	}
	*t = sqlTime(parsed.UTC())
	return nil
}

func (t sqlTime) Time() time.Time { return time.Time(t) }

func ts(t time.Time) sqlTime { return sqlTime(t) }

func tsPtr(t *time.Time) *sqlTime {
	if t == nil {
		return nil
	}
	v := sqlTime(*t)
	return &v
}

func timePtr(t *sqlTime) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time()
	return &v
}
