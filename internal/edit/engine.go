// Package edit implements the structural find & replace engine: anchor
// pruned pattern matching over a sparse voxel volume, atomic swap
// execution, and the post-swap adjustment session that nudges inserted
// cells before the operation is committed to the undo sink.
package edit

import (
	"math/rand"

	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
)

const defaultBatchSize = 256

// Config carries the engine's collaborators. Volume is required; the
// sinks default to no-ops.
type Config struct {
	Sink      ProgressSink
	Undo      UndoSink
	BatchSize int
	Seed      int64
}

// Engine borrows the host's volume for the duration of each search,
// swap or adjustment, and must leave it internally consistent at every
// step boundary. It is single-threaded cooperative: the host drives
// all operations from one goroutine.
type Engine struct {
	vol  *volume.Volume
	sink ProgressSink
	undo UndoSink
	rng  *rand.Rand

	batchSize int
	search    *Search
	adjust    *adjustment
}

func New(vol *volume.Volume, cfg Config) *Engine {
	e := &Engine{
		vol:       vol,
		sink:      cfg.Sink,
		undo:      cfg.Undo,
		batchSize: cfg.BatchSize,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	if e.sink == nil {
		e.sink = NopSink{}
	}
	if e.undo == nil {
		e.undo = NopSink{}
	}
	if e.batchSize <= 0 {
		e.batchSize = defaultBatchSize
	}
	return e
}

// StartSearch begins a cooperative search for the pattern, cancelling
// any search still in flight first. The returned Search is driven by
// the host via Step (or Run).
func (e *Engine) StartSearch(p pattern.Pattern, scope *volume.Box, matchRotations bool) (*Search, error) {
	if e.vol == nil {
		return nil, ErrNoVolume
	}
	if e.search != nil && !e.search.Done() {
		e.search.Cancel()
		e.search.Step()
	}
	e.search = newSearch(e.vol, p, scope, matchRotations, e.batchSize, e.sink)
	return e.search, nil
}

// FindMatches runs a search to completion in one call. Hosts that need
// to stay responsive use StartSearch and drive batches themselves.
func (e *Engine) FindMatches(p pattern.Pattern, scope *volume.Box, matchRotations bool) ([]Match, error) {
	s, err := e.StartSearch(p, scope, matchRotations)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}

// CancelSearch flags the in-flight search, if any, for cooperative
// cancellation.
func (e *Engine) CancelSearch() {
	if e.search != nil {
		e.search.Cancel()
	}
}

// Searching reports whether a search is in flight.
func (e *Engine) Searching() bool {
	return e.search != nil && !e.search.Done()
}

// StepSearch advances the in-flight search by one batch. It returns
// true when no further stepping is needed.
func (e *Engine) StepSearch() bool {
	if e.search == nil {
		return true
	}
	return e.search.Step()
}

// Deactivate is called when the host's tool is put away. In-progress
// adjustment work is committed, never silently discarded; a running
// search is cancelled.
func (e *Engine) Deactivate() error {
	e.CancelSearch()
	if e.adjust != nil {
		return e.ConfirmAdjustment()
	}
	return nil
}
