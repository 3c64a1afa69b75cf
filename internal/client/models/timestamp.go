package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp accepts the several date and time encodings the gateway uses:
// RFC 3339, naive "YYYY-MM-DD HH:MM:SS", plain "YYYY-MM-DD" dates and epoch
// milliseconds. Naive values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	if b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("unrecognised timestamp %s", b)
		}
		*t = Timestamp{time.UnixMilli(ms).UTC()}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	// epoch milliseconds sent as a string
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = Timestamp{time.UnixMilli(ms).UTC()}
		return nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Day formats the calendar date, or "" for a zero value.
func (t Timestamp) Day() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Clock formats the time of day, or "" for a zero value.
func (t Timestamp) Clock() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
