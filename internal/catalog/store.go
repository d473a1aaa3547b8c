// Package catalog loads the addon data sets: it fetches one CSV source per
// game concurrently, parses them, and publishes the result as a whole.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"addonlist/internal/addon"
	"addonlist/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// slowBatch is the load duration above which a batch is logged as a warning.
var slowBatch = 3 * time.Second

// DataSet maps a game identifier to its addon records in source order.
// A DataSet is never mutated after it is published.
type DataSet map[string][]addon.Record

// Source names a data set and where to fetch it.
type Source struct {
	Name     string
	Location string
}

// Store owns the current DataSet and runs load batches.
type Store struct {
	fetcher Fetcher
	sources []Source
	timeout time.Duration

	mu       sync.RWMutex
	sets     DataSet
	err      error
	inflight int
	loads    int
}

// NewStore creates a store over the given sources. A zero timeout means
// batches are bounded only by the caller's context.
func NewStore(f Fetcher, sources []Source, timeout time.Duration) *Store {
	return &Store{
		fetcher: f,
		sources: sources,
		timeout: timeout,
	}
}

// Names returns the configured data set names in order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name)
	}
	return names
}

// Sources returns the configured sources.
func (s *Store) Sources() []Source {
	return append([]Source(nil), s.sources...)
}

func (s *Store) location(name string) (string, bool) {
	for _, src := range s.sources {
		if src.Name == name {
			return src.Location, true
		}
	}
	return "", false
}

// Loading reports whether a batch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Ready reports whether a batch has completed successfully.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets != nil
}

// Sets returns the last published DataSet, nil before the first success.
func (s *Store) Sets() DataSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

// Rows returns the records of one data set.
func (s *Store) Rows(name string) []addon.Record {
	return s.Sets()[name]
}

// Err returns the error of the most recent batch, nil if it succeeded.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Load fetches and parses the named data sets (all configured ones when
// names is empty) concurrently. The first failure cancels the rest and is
// returned; nothing from a failed batch becomes visible. On success the
// store's DataSet is replaced in one step.
func (s *Store) Load(ctx context.Context, names ...string) (DataSet, error) {
	if len(names) == 0 {
		names = s.Names()
	}
	names = dedupe(names)

	cycle := uuid.NewString()[:8]
	log := logging.Get(logging.CategoryCatalog).With("cycle", cycle)
	timer := logging.StartTimer(logging.CategoryCatalog, "load batch "+cycle)

	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Info("loading %d data sets: %v", len(names), names)

	results := make([][]addon.Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			records, err := s.loadOne(gctx, name)
			if err != nil {
				return err
			}
			results[i] = records
			log.Debug("%s: %d records", name, len(records))
			return nil
		})
	}
	err := g.Wait()
	timer.StopWithThreshold(slowBatch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if err != nil {
		log.Error("batch failed: %v", err)
		s.err = err
		return nil, err
	}

	next := make(DataSet, len(names))
	for i, name := range names {
		next[name] = results[i]
	}
	s.sets = next
	s.err = nil
	s.loads++
	log.Info("batch published (load #%d)", s.loads)
	return next, nil
}

func (s *Store) loadOne(ctx context.Context, name string) ([]addon.Record, error) {
	src, ok := s.location(name)
	if !ok {
		return nil, &FetchError{Name: name, Err: ErrUnknownDataSet}
	}
	defer logging.StartTimer(logging.CategoryCatalog, "load "+name).Stop()

	rc, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.Name, fe.Source = name, src
			return nil, fe
		}
		return nil, &FetchError{Name: name, Source: src, Err: err}
	}
	defer rc.Close()

	records, err := ParseRecords(name, rc)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		// Read failures mid-body are retrieval problems, not malformed CSV.
		return nil, &FetchError{Name: name, Source: src, Err: err}
	}
	return records, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
