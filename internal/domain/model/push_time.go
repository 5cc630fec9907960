package model

import (
	"fmt"
	"strings"
	"time"
	// Embedded zone database so PushTimeZone resolves on hosts without tzdata.
	_ "time/tzdata"
)

const (
	// PushTimeLayout is the layout of the push_time form field.
	PushTimeLayout = "2006-01-02 15:04"
	// PushTimeZone is the zone push times are entered and named in.
	PushTimeZone = "Australia/Sydney"
)

// ParsePushTime parses raw as wall-clock time in loc.
func ParsePushTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: push time is required", ErrInvalidTimestamp)
	}
	t, err := time.ParseInLocation(PushTimeLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD HH:MM", ErrInvalidTimestamp, raw)
	}
	return t, nil
}

// FormatPushTime renders t in loc using PushTimeLayout.
func FormatPushTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(PushTimeLayout)
}
