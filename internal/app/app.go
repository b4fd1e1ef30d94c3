package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"weather-history-loader/internal/config"
	"weather-history-loader/internal/container"
	"weather-history-loader/internal/store"
	"weather-history-loader/internal/weather"
)

// Runtime is the subset of the container launcher the pipeline drives.
type Runtime interface {
	Launch(ctx context.Context, p container.Params) error
	Teardown(ctx context.Context, mode container.TeardownMode, in io.Reader, out io.Writer) error
}

// StoreFactory opens the database gateway once the container is confirmed
// running.
type StoreFactory func(cfg store.Config) (weather.Store, error)

// Pipeline wires the run: fetch, provision, load, report, teardown. Every
// stage failure is fatal to the run; there is no mid-run recovery.
type Pipeline struct {
	Cfg      *config.AppConfig
	Provider weather.HistoryProvider
	Runtime  Runtime
	NewStore StoreFactory

	Now func() time.Time
	In  io.Reader
	Out io.Writer
}

// Run executes the batch job end to end.
func (p *Pipeline) Run(ctx context.Context) error {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	// 1. Fetch the observation window.
	rng := weather.RangeForMonths(now, p.Cfg.Months)
	point := weather.Point{Latitude: config.Latitude, Longitude: config.Longitude}

	table, meta, err := p.Provider.FetchDaily(ctx, point, rng)
	if err != nil {
		return fmt.Errorf("fetching weather history: %w", err)
	}

	log.Printf("INFO: coordinates %g°N %g°E", meta.Latitude, meta.Longitude)
	log.Printf("INFO: elevation %g m asl", meta.Elevation)
	log.Printf("INFO: timezone %s %s, offset to GMT+0 %d s", meta.Timezone, meta.TimezoneAbbr, meta.UTCOffsetSecs)
	log.Printf("INFO: fetched %d daily observations covering %d months.", len(table), p.Cfg.Months)

	// 2. Provision the database container.
	params := container.Params{
		ContainerName: p.Cfg.ContainerName,
		DBName:        p.Cfg.DBName,
		DBUser:        p.Cfg.DBUser,
		DBPassword:    p.Cfg.DBPassword,
		InternalPort:  p.Cfg.InternalPort,
		ExternalPort:  p.Cfg.ExternalPort,
	}
	if err := p.Runtime.Launch(ctx, params); err != nil {
		return fmt.Errorf("launching container: %w", err)
	}

	// 3. Persist the table, replacing prior contents.
	gw, err := p.NewStore(store.Config{
		Host:     p.Cfg.DBHost,
		Port:     p.Cfg.ExternalPort,
		User:     p.Cfg.DBUser,
		Password: p.Cfg.DBPassword,
		DBName:   p.Cfg.DBName,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer gw.Close()
	log.Printf("INFO: connected to database %s.", p.Cfg.DBName)

	if err := gw.EnsureTable(ctx, p.Cfg.TableName); err != nil {
		return fmt.Errorf("ensuring table: %w", err)
	}
	if err := gw.Load(ctx, p.Cfg.TableName, table); err != nil {
		return fmt.Errorf("loading table: %w", err)
	}
	log.Printf("INFO: %d rows written to table %s.", len(table), p.Cfg.TableName)

	// 4. Report.
	p.report(table)

	// 5. Teardown decision.
	if err := p.Runtime.Teardown(ctx, p.Cfg.Teardown, p.In, p.Out); err != nil {
		return fmt.Errorf("tearing down container: %w", err)
	}
	return nil
}

func (p *Pipeline) report(table weather.Table) {
	fmt.Fprintf(p.Out, "Clear days (weather_code 0 or 1) in the requested period: %d\n",
		weather.CountClearDays(table))
	fmt.Fprintf(p.Out, "Days with maximum temperature of at least %.0f°C: %d\n",
		config.ClearSkyTempThreshold, weather.CountDaysAbove(table, config.ClearSkyTempThreshold))
	fmt.Fprintf(p.Out, "Hottest and windiest days of the period: %s\n",
		strings.Join(weather.TopDates(table), ", "))

	fmt.Fprintf(p.Out, `
You can connect to the local PostgreSQL database with any client
(DBeaver, pgAdmin, psql) using:

    Host:     %s
    Port:     %d
    Database: %s
    User:     %s
    Password: %s

`, p.Cfg.DBHost, p.Cfg.ExternalPort, p.Cfg.DBName, p.Cfg.DBUser, p.Cfg.DBPassword)
}
