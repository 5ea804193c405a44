package edit

import "voxelpatch.dev/internal/edit/volume"

// SearchStatus is reported to the progress sink after every processed
// batch and once more when the search ends.
type SearchStatus struct {
	MatchCount int  `json:"match_count"`
	Searching  bool `json:"searching"`
	Progress   int  `json:"progress"` // 0..100
	Cancelled  bool `json:"cancelled,omitempty"`
}

// ProgressSink receives engine state transitions. It is consumed by
// the host UI; the engine never reads back from it.
type ProgressSink interface {
	SearchProgress(SearchStatus)
	AdjustActive(active bool)
	AdjustOffset(offset volume.Vec3i)
}

// UndoSink accepts one opaque reversible cell-delta record per
// confirmed operation.
type UndoSink interface {
	Record(volume.CellDelta) error
}

// NopSink discards everything. Used when the host wires no UI.
type NopSink struct{}

func (NopSink) SearchProgress(SearchStatus)   {}
func (NopSink) AdjustActive(bool)             {}
func (NopSink) AdjustOffset(volume.Vec3i)     {}
func (NopSink) Record(volume.CellDelta) error { return nil }
