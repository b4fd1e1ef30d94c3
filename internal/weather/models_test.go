package weather

import (
	"testing"
	"time"
)

// TestRangeForMonthsDays verifies the window row count matches the calendar
// distance for a spread of month counts and anchor dates.
func TestRangeForMonthsDays(t *testing.T) {
	anchors := []time.Time{
		time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap day
		time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		// Month-end anchors that land in shorter target months.
		time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 6, 15, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range anchors {
		for months := 1; months <= 24; months++ {
			r := RangeForMonths(now, months)

			if !r.Start.Before(r.End) {
				t.Fatalf("months=%d now=%s: start %s not before end %s",
					months, now, r.Start, r.End)
			}

			wantDays := 0
			for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
				wantDays++
			}
			if got := r.Days(); got != wantDays {
				t.Fatalf("months=%d now=%s: Days() = %d, walked %d",
					months, now, got, wantDays)
			}
		}
	}
}

// TestRangeForMonthsClampsToMonthEnd verifies that an anchor day missing
// from the target month clamps to that month's last day instead of
// normalizing into the following month.
func TestRangeForMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		now       time.Time
		months    int
		wantStart time.Time
	}{
		// "June 31" must become June 30, not July 1.
		{time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
		// February in a leap year.
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		// February in a non-leap year.
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		// Crossing a year boundary.
		{time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), 11, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		// Existing anchor days stay untouched.
		{time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC), 2, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		r := RangeForMonths(c.now, c.months)
		if !r.Start.Equal(c.wantStart) {
			t.Errorf("RangeForMonths(%s, %d).Start = %s, want %s",
				c.now.Format("2006-01-02"), c.months,
				r.Start.Format("2006-01-02"), c.wantStart.Format("2006-01-02"))
		}
		if gotEnd := time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, time.UTC); !r.End.Equal(gotEnd) {
			t.Errorf("RangeForMonths(%s, %d).End = %s, want anchor midnight",
				c.now.Format("2006-01-02"), c.months, r.End.Format("2006-01-02"))
		}
	}
}

func TestRangeForMonthsDropsTimeOfDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 45, 12, 0, time.UTC)
	r := RangeForMonths(now, 2)

	if r.End.Hour() != 0 || r.End.Minute() != 0 {
		t.Fatalf("end should be midnight, got %s", r.End)
	}
	if want := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC); !r.Start.Equal(want) {
		t.Fatalf("start: expected %s, got %s", want, r.Start)
	}
}
