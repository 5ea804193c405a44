// Package editor is the single-goroutine host around the edit engine.
// All client requests funnel through an inbox channel and are applied
// on a fixed tick, the same tick that advances in-flight search
// batches, so engine state never needs a lock.
package editor

import (
	"context"
	"log"
	"time"

	"voxelpatch.dev/internal/edit"
	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
	"voxelpatch.dev/internal/persistence/templates"
	"voxelpatch.dev/internal/tuning"
)

// Envelope is one raw client request awaiting the next tick.
type Envelope struct {
	ClientID string
	Raw      []byte
}

type Host struct {
	cfg tuning.Tuning
	log *log.Logger

	vol       *volume.Volume
	engine    *edit.Engine
	templates *templates.Store // nil when no template store is configured
	undoStack *UndoStack

	clients map[string]*client

	join  chan JoinRequest
	leave chan string
	inbox chan Envelope
	stop  chan struct{}

	// In-flight search bookkeeping: the request that started it, and
	// the find pattern a later REPLACE will remove.
	search    *edit.Search
	findReqID string
	findPat   pattern.Pattern

	lastMatches []edit.Match
	haveMatches bool
}

// New builds a host around vol. store may be nil; journal may be nil,
// in which case committed operations only reach the in-memory undo
// stack.
func New(cfg tuning.Tuning, vol *volume.Volume, store *templates.Store, journal edit.UndoSink, logger *log.Logger) *Host {
	h := &Host{
		cfg:       cfg,
		log:       logger,
		vol:       vol,
		templates: store,
		undoStack: NewUndoStack(cfg.UndoCapacity),
		clients:   map[string]*client{},
		join:      make(chan JoinRequest, 4),
		leave:     make(chan string, 4),
		inbox:     make(chan Envelope, 64),
		stop:      make(chan struct{}),
	}
	sinks := []edit.UndoSink{h.undoStack}
	if journal != nil {
		sinks = append(sinks, journal)
	}
	h.engine = edit.New(vol, edit.Config{
		Sink:      h,
		Undo:      fanoutSink(sinks),
		BatchSize: cfg.SearchBatchSize,
		Seed:      time.Now().UnixNano(),
	})
	return h
}

func (h *Host) Join() chan<- JoinRequest { return h.join }
func (h *Host) Leave() chan<- string     { return h.leave }
func (h *Host) Inbox() chan<- Envelope   { return h.inbox }

func (h *Host) Run(ctx context.Context) error {
	interval := time.Duration(h.cfg.TickIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pending []Envelope
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.stop:
			return nil
		case req := <-h.join:
			h.handleJoin(req)
		case id := <-h.leave:
			h.handleLeave(id)
		case env := <-h.inbox:
			pending = append(pending, env)
		case <-ticker.C:
			for _, env := range pending {
				h.dispatch(env)
			}
			pending = pending[:0]
			h.stepSearch()
		}
	}
}

func (h *Host) Stop() { close(h.stop) }

// stepSearch advances the in-flight search by one batch per tick, so
// request handling stays responsive during large searches. When the
// search completes without cancellation its matches are retained for
// the next REPLACE and broadcast.
func (h *Host) stepSearch() {
	if h.search == nil {
		return
	}
	if !h.search.Step() {
		return
	}
	done := h.search
	reqID := h.findReqID
	h.search = nil
	h.findReqID = ""
	if done.Cancelled() {
		return
	}
	h.lastMatches = done.Matches()
	h.haveMatches = true
	h.broadcastMatches(reqID, h.lastMatches)
}
