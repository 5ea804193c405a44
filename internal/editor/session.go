package editor

import (
	"encoding/json"

	"github.com/google/uuid"

	"voxelpatch.dev/internal/edit"
	"voxelpatch.dev/internal/edit/volume"
	"voxelpatch.dev/internal/protocol"
)

// JoinRequest attaches one client to the host. Out is the client's
// buffered send queue; Resp receives the WELCOME on the host loop.
type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan protocol.WelcomeMsg
}

type client struct {
	id   string
	name string
	out  chan []byte
}

func (h *Host) handleJoin(req JoinRequest) {
	id := uuid.NewString()
	name := req.Name
	if name == "" {
		name = "editor"
	}
	h.clients[id] = &client{id: id, name: name, out: req.Out}
	h.log.Printf("client joined id=%s name=%s clients=%d", id, name, len(h.clients))
	req.Resp <- protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       id,
		VolumeCells:     h.vol.Len(),
	}
}

func (h *Host) handleLeave(id string) {
	if _, ok := h.clients[id]; !ok {
		return
	}
	delete(h.clients, id)
	h.log.Printf("client left id=%s clients=%d", id, len(h.clients))
}

func (h *Host) send(clientID string, v any) {
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Printf("marshal outbound: %v", err)
		return
	}
	sendLatest(c.out, b)
}

func (h *Host) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Printf("marshal broadcast: %v", err)
		return
	}
	for _, c := range h.clients {
		sendLatest(c.out, b)
	}
}

// sendLatest enqueues without blocking the host loop: when a client's
// queue is full the oldest message is dropped in favor of the new one.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

// The host is the engine's progress sink: engine events become
// broadcast protocol messages.

func (h *Host) SearchProgress(st edit.SearchStatus) {
	h.broadcast(protocol.SearchProgressMsg{
		Type:            protocol.TypeSearchProgress,
		ProtocolVersion: protocol.Version,
		MatchCount:      st.MatchCount,
		Searching:       st.Searching,
		Progress:        st.Progress,
		Cancelled:       st.Cancelled,
	})
}

func (h *Host) AdjustActive(active bool) {
	offset, _ := h.engine.AdjustOffset()
	h.broadcast(protocol.AdjustStateMsg{
		Type:            protocol.TypeAdjustState,
		ProtocolVersion: protocol.Version,
		Active:          active,
		Offset:          [3]int{offset.X, offset.Y, offset.Z},
	})
}

func (h *Host) AdjustOffset(offset volume.Vec3i) {
	h.broadcast(protocol.AdjustStateMsg{
		Type:            protocol.TypeAdjustState,
		ProtocolVersion: protocol.Version,
		Active:          true,
		Offset:          [3]int{offset.X, offset.Y, offset.Z},
	})
}

func (h *Host) broadcastMatches(reqID string, matches []edit.Match) {
	h.broadcast(protocol.MatchesMsg{
		Type:            protocol.TypeMatches,
		ProtocolVersion: protocol.Version,
		ReqID:           reqID,
		Matches:         matchesToWire(matches),
	})
}

// fanoutSink delivers every undo record to all sinks. The first
// failure wins, but later sinks still see the record.
type fanoutSink []edit.UndoSink

func (f fanoutSink) Record(d volume.CellDelta) error {
	var first error
	for _, s := range f {
		if err := s.Record(d); err != nil && first == nil {
			first = err
		}
	}
	return first
}
