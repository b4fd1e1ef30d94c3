package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weather-history-loader/internal/weather"
)

// dailyVariables is the fixed set of daily variables requested per run, in
// the order the response arrays are consumed.
var dailyVariables = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"apparent_temperature_max",
	"apparent_temperature_min",
	"wind_speed_10m_max",
}

// OpenMeteoProvider implements weather.HistoryProvider against the Open-Meteo
// historical forecast API.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	timezone string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider builds a provider around the given client. The client
// is expected to carry the disk-backed response cache; retry with backoff
// (5 attempts, 0.2s factor) and a circuit breaker are layered on top here.
func NewOpenMeteoProvider(client *http.Client, timezone string) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-history",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoProvider{
		name:     "openmeteo-history",
		baseURL:  "https://historical-forecast-api.open-meteo.com/v1/forecast",
		timezone: timezone,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      4,
				InitialInterval: 200 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoDaily mirrors the per-variable arrays of the API response, aligned
// to the daily time axis.
type openMeteoDaily struct {
	Time                   []string  `json:"time"`
	WeatherCode            []int     `json:"weather_code"`
	Temperature2mMax       []float64 `json:"temperature_2m_max"`
	Temperature2mMin       []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
	WindSpeed10mMax        []float64 `json:"wind_speed_10m_max"`
}

type openMeteoResponse struct {
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	Elevation        float64        `json:"elevation"`
	Timezone         string         `json:"timezone"`
	TimezoneAbbr     string         `json:"timezone_abbreviation"`
	UTCOffsetSeconds int            `json:"utc_offset_seconds"`
	Daily            openMeteoDaily `json:"daily"`
}

// FetchDaily issues one request for the fixed daily variable set over the
// half-open window [r.Start, r.End) and returns one observation per day,
// ascending by date.
func (p *OpenMeteoProvider) FetchDaily(ctx context.Context, pt weather.Point, r weather.Range) (weather.Table, weather.Metadata, error) {
	if r.Days() < 1 {
		return nil, weather.Metadata{}, fmt.Errorf("requested window [%s, %s) is empty",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%g", pt.Latitude))
		values.Set("longitude", fmt.Sprintf("%g", pt.Longitude))
		values.Set("start_date", r.Start.Format("2006-01-02"))
		// end_date is inclusive on the wire; the window is half-open.
		values.Set("end_date", r.End.AddDate(0, 0, -1).Format("2006-01-02"))
		for _, v := range dailyVariables {
			values.Add("daily", v)
		}
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", p.timezone)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, weather.Metadata{}, fmt.Errorf("openmeteo history fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, weather.Metadata{}, fmt.Errorf("decoding openmeteo response: %w", err)
	}

	table, err := tableFromDaily(payload.Daily)
	if err != nil {
		return nil, weather.Metadata{}, err
	}

	meta := weather.Metadata{
		Latitude:      payload.Latitude,
		Longitude:     payload.Longitude,
		Elevation:     payload.Elevation,
		Timezone:      payload.Timezone,
		TimezoneAbbr:  payload.TimezoneAbbr,
		UTCOffsetSecs: payload.UTCOffsetSeconds,
	}
	return table, meta, nil
}

// tableFromDaily zips the per-variable arrays into observation rows and
// checks that the time axis is daily, contiguous and aligned with every
// variable array.
func tableFromDaily(d openMeteoDaily) (weather.Table, error) {
	n := len(d.Time)
	if n == 0 {
		return nil, fmt.Errorf("openmeteo response contains no daily data")
	}
	for name, l := range map[string]int{
		"weather_code":             len(d.WeatherCode),
		"temperature_2m_max":       len(d.Temperature2mMax),
		"temperature_2m_min":       len(d.Temperature2mMin),
		"apparent_temperature_max": len(d.ApparentTemperatureMax),
		"apparent_temperature_min": len(d.ApparentTemperatureMin),
		"wind_speed_10m_max":       len(d.WindSpeed10mMax),
	} {
		if l != n {
			return nil, fmt.Errorf("openmeteo response misaligned: %d dates but %d %s values", n, l, name)
		}
	}

	table := make(weather.Table, 0, n)
	var prev time.Time
	for i := 0; i < n; i++ {
		date, err := time.ParseInLocation("2006-01-02", d.Time[i], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", d.Time[i], err)
		}
		if i > 0 && !date.Equal(prev.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("openmeteo time axis not contiguous at %s", d.Time[i])
		}
		prev = date

		table = append(table, weather.Observation{
			Date:                   date,
			WeatherCode:            d.WeatherCode[i],
			Temperature2mMax:       d.Temperature2mMax[i],
			Temperature2mMin:       d.Temperature2mMin[i],
			ApparentTemperatureMax: d.ApparentTemperatureMax[i],
			ApparentTemperatureMin: d.ApparentTemperatureMin[i],
			WindSpeed10mMax:        d.WindSpeed10mMax[i],
		})
	}
	return table, nil
}

// WithBaseURL points the provider at a different endpoint, for tests.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}
