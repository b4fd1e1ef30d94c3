package weather

import (
	"time"
)

// Point identifies the fixed geographic location observations are fetched for.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Observation is one calendar date's daily weather summary.
type Observation struct {
	Date                   time.Time `json:"date"`
	WeatherCode            int       `json:"weather_code"`
	Temperature2mMax       float64   `json:"temperature_2m_max"`
	Temperature2mMin       float64   `json:"temperature_2m_min"`
	ApparentTemperatureMax float64   `json:"apparent_temperature_max"`
	ApparentTemperatureMin float64   `json:"apparent_temperature_min"`
	WindSpeed10mMax        float64   `json:"wind_speed_10m_max"`
}

// Table is the ordered in-memory set of daily observations for one run:
// one row per calendar date, ascending, no gaps.
type Table []Observation

// Metadata describes the provider response a table was built from.
type Metadata struct {
	Latitude      float64
	Longitude     float64
	Elevation     float64
	Timezone      string
	TimezoneAbbr  string
	UTCOffsetSecs int
}

// Range is the half-open [Start, End) date window of a fetch.
type Range struct {
	Start time.Time
	End   time.Time
}

// RangeForMonths computes the fetch window ending today and starting the
// given number of months back. When the anchor day does not exist in the
// target month (e.g. July 31 minus one month), the start clamps to the last
// day of that month rather than normalizing into the next one.
func RangeForMonths(now time.Time, months int) Range {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	year, month := end.Year(), int(end.Month())-months
	for month < 1 {
		month += 12
		year--
	}

	day := end.Day()
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}

	return Range{
		Start: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		End:   end,
	}
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Days returns the number of daily rows the window covers.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}
