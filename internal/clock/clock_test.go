package clock

import (
	"testing"
	"time"
)

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.Local)
	got := Midnight(ts)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Midnight = %v, want %v", got, want)
	}
}

func TestToday(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)
	got := Today(Fixed{T: ts})
	if !got.Equal(Midnight(ts)) {
		t.Errorf("Today = %v, want %v", got, Midnight(ts))
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 15, 0, time.Local)
	parsed, err := ParseDateTime(FormatDateTime(ts))
	if err != nil {
		t.Fatalf("ParseDateTime failed: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("round-trip %v -> %v", ts, parsed)
	}

	if _, err := ParseDateTime("not a timestamp"); err == nil {
		t.Error("ParseDateTime accepted garbage")
	}
}
