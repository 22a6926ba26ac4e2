package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with second precision, stored in
// TIME columns. Doctors' availability windows compare on this type.
type TimeOfDay struct {
	t time.Time
}

const timeOfDayLayout = "15:04:05"

var timeOfDayLayouts = []string{timeOfDayLayout, "15:04"}

// ParseTimeOfDay accepts HH:MM:SS and HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{t: t}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// TimeOfDayFrom extracts the time-of-day component of a timestamp.
func TimeOfDayFrom(ts time.Time) TimeOfDay {
	t, _ := time.Parse(timeOfDayLayout, ts.Format(timeOfDayLayout))
	return TimeOfDay{t: t}
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.t.Before(other.t) }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.t.After(other.t) }

func (t TimeOfDay) String() string {
	return t.t.Format(timeOfDayLayout)
}

// Scan implements sql.Scanner. lib/pq hands TIME columns back as text.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDayFrom(v)
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// MarshalJSON renders the HH:MM:SS form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid time of day %s", s)
	}
	parsed, err := ParseTimeOfDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
