package model

import (
	"errors"
	"testing"
	"time"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(PushTimeZone)
	if err != nil {
		t.Fatalf("LoadLocation(%s): %v", PushTimeZone, err)
	}
	return loc
}

func TestParsePushTime(t *testing.T) {
	loc := sydney(t)

	got, err := ParsePushTime(" 2024-03-01 09:30 ", loc)
	if err != nil {
		t.Fatalf("ParsePushTime() error = %v", err)
	}
	want := time.Date(2024, time.March, 1, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParsePushTime() = %v, want %v", got, want)
	}
	// Sydney is on daylight time (UTC+11) in March.
	if utc := got.UTC(); utc.Hour() != 22 || utc.Day() != 29 {
		t.Errorf("ParsePushTime() UTC = %v, want 2024-02-29 22:30", utc)
	}

	for _, raw := range []string{"", "not-a-date", "2024-03-01", "2024-03-01T09:30", "01/03/2024 09:30"} {
		if _, err := ParsePushTime(raw, loc); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ParsePushTime(%q) error = %v, want ErrInvalidTimestamp", raw, err)
		}
	}
}

func TestFormatPushTime(t *testing.T) {
	loc := sydney(t)
	ts := time.Date(2024, time.June, 30, 23, 15, 0, 0, time.UTC)
	if got := FormatPushTime(ts, loc); got != "2024-07-01 09:15" {
		t.Errorf("FormatPushTime() = %q, want 2024-07-01 09:15", got)
	}
}
