package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireLayouts are the ISO-8601 layouts accepted when decoding.
// Naive timestamps (no zone) are read as UTC.
var wireLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp is an ISO-8601 date-time on the wire.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, dropping sub-second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses an ISO-8601 string.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range wireLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// String formats the timestamp as RFC 3339 in UTC.
func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// MarshalJSON encodes the timestamp as an RFC 3339 string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes any accepted ISO-8601 layout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
