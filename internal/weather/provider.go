package weather

import (
	"context"
)

// HistoryProvider abstracts the source of daily historical observations
// (e.g. the Open-Meteo historical forecast API).
type HistoryProvider interface {
	Name() string
	FetchDaily(ctx context.Context, p Point, r Range) (Table, Metadata, error)
}

// Store is the contract the persistent gateway must satisfy. The load is
// replace-wholesale: prior contents of the table are discarded each run.
type Store interface {
	EnsureTable(ctx context.Context, table string) error
	Load(ctx context.Context, table string, rows Table) error
	Close() error
}
