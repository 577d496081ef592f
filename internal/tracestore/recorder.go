package tracestore

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/benjaminjack/pinetree/internal/polymer"
)

// TerminationEvent is one row of a recorded polymerase termination.
type TerminationEvent struct {
	Tick int64
	polymer.TerminationEvent
}

// SpeciesCount is one row of a recorded species coverage delta.
type SpeciesCount struct {
	Tick    int64
	Species string
	Delta   int
}

// WriteTerminationEvents batch-inserts termination events using the
// Appender API, mirroring internal/duckdb/variants.go's
// WriteVariantResults.
func (s *Store) WriteTerminationEvents(events []TerminationEvent) error {
	if len(events) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "termination_events")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, ev := range events {
		if err := appender.AppendRow(ev.Tick, int32(ev.PolymerIndex), ev.PolymerName, ev.Polymerase, ev.Gene); err != nil {
			return fmt.Errorf("append termination event: %w", err)
		}
	}
	return appender.Flush()
}

// WriteSpeciesCounts batch-inserts species coverage deltas.
func (s *Store) WriteSpeciesCounts(counts []SpeciesCount) error {
	if len(counts) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "species_counts")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, c := range counts {
		if err := appender.AppendRow(c.Tick, c.Species, int32(c.Delta)); err != nil {
			return fmt.Errorf("append species count: %w", err)
		}
	}
	return appender.Flush()
}

// terminationSource is satisfied by polymer.Polymer and, by embedding,
// polymer.Genome and polymer.Transcript.
type terminationSource interface {
	OnTermination(fn func(polymer.TerminationEvent)) (disconnect func())
}

// speciesLogSource is satisfied by polymer.Polymer and, by embedding,
// polymer.Genome and polymer.Transcript.
type speciesLogSource interface {
	SpeciesLog() map[string]int
}

// SubscribeTermination connects to pm's termination signal and appends a
// row to termination_events for every event, tagging each with the
// caller-supplied tick. Errors writing to DuckDB are reported through
// onError rather than propagated, since a Signal callback cannot return
// an error.
func (s *Store) SubscribeTermination(pm terminationSource, tick func() int64, onError func(error)) (disconnect func()) {
	return pm.OnTermination(func(ev polymer.TerminationEvent) {
		row := TerminationEvent{Tick: tick(), TerminationEvent: ev}
		if err := s.WriteTerminationEvents([]TerminationEvent{row}); err != nil && onError != nil {
			onError(err)
		}
	})
}

// FlushSpeciesLog reads pm's current species log and appends one row per
// entry, tagged with the caller-supplied tick. Intended to be called
// once per outer-scheduler tick, after Execute and before the next one
// clears the log.
func (s *Store) FlushSpeciesLog(pm speciesLogSource, tick int64) error {
	log := pm.SpeciesLog()
	if len(log) == 0 {
		return nil
	}
	counts := make([]SpeciesCount, 0, len(log))
	for species, delta := range log {
		counts = append(counts, SpeciesCount{Tick: tick, Species: species, Delta: delta})
	}
	return s.WriteSpeciesCounts(counts)
}
