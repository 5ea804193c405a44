package edit

import (
	"sort"

	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
)

// Match is one accepted, conflict-free occurrence of the find pattern:
// the volume coordinate of the pattern's local origin and which of the
// four rotations matched there.
type Match struct {
	Origin   volume.Vec3i `json:"origin"`
	Rotation int          `json:"rotation"`
}

// Search is a cooperative matching task. The host drives it by calling
// Step until it reports done; each Step processes one bounded batch of
// candidate origins and reports progress, so a large search never
// blocks the host loop. Cancellation is a flag observed at the top of
// each batch.
type Search struct {
	vol      *volume.Volume
	variants []pattern.Optimized
	rotated  []pattern.Pattern

	candidates []volume.Vec3i
	next       int
	batchSize  int
	sink       ProgressSink

	claimed map[volume.Vec3i]struct{}
	matches []Match

	cancelled bool
	done      bool
}

// newSearch binds the pattern's rotation variants to the volume and
// collects candidate origins from the type index: only coordinates
// where some variant's anchor type physically occurs can possibly be
// a match origin, which is what keeps the search off a full volume
// scan. Candidates are deduplicated across variants and sorted so the
// acceptance order is deterministic.
func newSearch(vol *volume.Volume, p pattern.Pattern, scope *volume.Box, matchRotations bool, batchSize int, sink ProgressSink) *Search {
	s := &Search{
		vol:       vol,
		rotated:   pattern.Rotations(p, matchRotations),
		batchSize: batchSize,
		sink:      sink,
		claimed:   map[volume.Vec3i]struct{}{},
	}
	s.variants = make([]pattern.Optimized, len(s.rotated))
	for i, rp := range s.rotated {
		s.variants[i] = pattern.Optimize(rp)
	}

	if len(p.Cells) == 0 {
		// Zero cells yield zero candidates, not an error.
		return s
	}

	idx := buildIndex(vol)
	seen := map[volume.Vec3i]struct{}{}
	for _, v := range s.variants {
		for _, c := range idx[v.Anchor.Type] {
			origin := c.Sub(v.Anchor.Offset)
			if scope != nil && !scope.Contains(origin) {
				continue
			}
			if _, dup := seen[origin]; dup {
				continue
			}
			seen[origin] = struct{}{}
			s.candidates = append(s.candidates, origin)
		}
	}
	sort.Slice(s.candidates, func(i, j int) bool { return s.candidates[i].Less(s.candidates[j]) })
	return s
}

// Cancel requests cooperative cancellation. The search finishes early
// with no results the next time it is stepped.
func (s *Search) Cancel() { s.cancelled = true }

func (s *Search) Done() bool       { return s.done }
func (s *Search) Cancelled() bool  { return s.cancelled }
func (s *Search) Matches() []Match { return s.matches }

// Step processes one batch of candidates. It returns true when the
// search has finished, whether by exhaustion or cancellation.
func (s *Search) Step() bool {
	if s.done {
		return true
	}
	if s.cancelled {
		s.finishCancelled()
		return true
	}

	end := s.next + s.batchSize
	if end > len(s.candidates) {
		end = len(s.candidates)
	}
	for ; s.next < end; s.next++ {
		origin := s.candidates[s.next]
		// First rotation variant (ascending index) that fully matches
		// wins; the origin is then skipped for every other rotation.
		for rot, v := range s.variants {
			if !s.tryClaim(origin, v) {
				continue
			}
			s.matches = append(s.matches, Match{Origin: origin, Rotation: rot})
			break
		}
	}

	if s.next >= len(s.candidates) {
		s.done = true
	}
	s.report()
	return s.done
}

// Run drives the search to completion in one call.
func (s *Search) Run() []Match {
	for !s.Step() {
	}
	return s.matches
}

// tryClaim verifies full-pattern equality at origin and, on success,
// claims every covered cell so later candidates cannot overlap.
func (s *Search) tryClaim(origin volume.Vec3i, v pattern.Optimized) bool {
	if len(v.Deltas) == 0 {
		return false
	}
	for _, d := range v.Deltas {
		p := origin.Add(d.Offset)
		if _, taken := s.claimed[p]; taken {
			return false
		}
		got, ok := s.vol.Get(p)
		if !ok || got != d.Type {
			return false
		}
	}
	for _, d := range v.Deltas {
		s.claimed[origin.Add(d.Offset)] = struct{}{}
	}
	return true
}

func (s *Search) progress() int {
	if len(s.candidates) == 0 {
		return 100
	}
	return s.next * 100 / len(s.candidates)
}

func (s *Search) report() {
	s.sink.SearchProgress(SearchStatus{
		MatchCount: len(s.matches),
		Searching:  !s.done,
		Progress:   s.progress(),
	})
}

func (s *Search) finishCancelled() {
	s.done = true
	s.matches = nil
	s.sink.SearchProgress(SearchStatus{
		MatchCount: 0,
		Searching:  false,
		Progress:   s.progress(),
		Cancelled:  true,
	})
}
