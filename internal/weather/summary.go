package weather

import (
	"fmt"
	"sort"
	"time"
)

// genitiveMonths is the fixed month-name vocabulary used when a date is read
// as "<day> of <month>" in the report output.
var genitiveMonths = map[int]string{
	1:  "января",
	2:  "февраля",
	3:  "марта",
	4:  "апреля",
	5:  "мая",
	6:  "июня",
	7:  "июля",
	8:  "августа",
	9:  "сентября",
	10: "октября",
	11: "ноября",
	12: "декабря",
}

// CountClearDays returns how many observations report a clear or mainly
// clear sky (weather codes 0 and 1).
func CountClearDays(t Table) int {
	n := 0
	for _, o := range t {
		if o.WeatherCode == 0 || o.WeatherCode == 1 {
			n++
		}
	}
	return n
}

// CountDaysAbove returns how many observations reached at least the given
// daily maximum temperature.
func CountDaysAbove(t Table, threshold float64) int {
	n := 0
	for _, o := range t {
		if o.Temperature2mMax >= threshold {
			n++
		}
	}
	return n
}

// TopDates pools the three hottest and the three windiest days, drops
// duplicate dates, and keeps the top three of the pool by maximum
// temperature, formatted as "<day> <genitive month> <year>". When the pooled
// set has fewer than three distinct dates, fewer entries are returned.
func TopDates(t Table) []string {
	pool := topBy(t, 3, func(o Observation) float64 { return o.Temperature2mMax })
	pool = append(pool, topBy(t, 3, func(o Observation) float64 { return o.WindSpeed10mMax })...)

	seen := make(map[string]bool, len(pool))
	var distinct Table
	for _, o := range pool {
		key := o.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		distinct = append(distinct, o)
	}

	top := topBy(distinct, 3, func(o Observation) float64 { return o.Temperature2mMax })

	formatted := make([]string, 0, len(top))
	for _, o := range top {
		formatted = append(formatted, FormatDate(o.Date))
	}
	return formatted
}

// FormatDate renders a date as "<day> <genitive month> <year>".
func FormatDate(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), genitiveMonths[int(d.Month())], d.Year())
}

// topBy returns up to n observations with the largest metric values,
// descending. Ties keep the earlier row first.
func topBy(t Table, n int, metric func(Observation) float64) Table {
	out := make(Table, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
