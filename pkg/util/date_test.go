package util

import (
	"testing"
	"time"
)

func TestParseDateISO(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2024 || got.Month() != time.October || got.Day() != 10 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseDate("1728555010")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	got := ParseDateDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestDayOffset(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	for _, tc := range []struct {
		t    time.Time
		want int
	}{
		{time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC), 30},
	} {
		if got := DayOffset(base, tc.t); got != tc.want {
			t.Fatalf("DayOffset(%v) = %d, want %d", tc.t, got, tc.want)
		}
	}
}

func TestPeriodToRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	start, end, err := PeriodToRange("2y", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != Day(now) {
		t.Fatalf("unexpected end %v", end)
	}
	if start.Year() != 2022 {
		t.Fatalf("unexpected start %v", start)
	}

	start, _, err = PeriodToRange("6mo", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Month() != time.December || start.Year() != 2023 {
		t.Fatalf("unexpected start %v", start)
	}

	if _, _, err := PeriodToRange("nope", now); err == nil {
		t.Fatalf("expected error for invalid period")
	}
}
