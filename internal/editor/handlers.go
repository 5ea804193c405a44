package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"voxelpatch.dev/internal/edit"
	"voxelpatch.dev/internal/edit/encoding"
	"voxelpatch.dev/internal/edit/pattern"
	"voxelpatch.dev/internal/edit/volume"
	"voxelpatch.dev/internal/mcworld"
	"voxelpatch.dev/internal/persistence/templates"
	"voxelpatch.dev/internal/protocol"
)

func (h *Host) dispatch(env Envelope) {
	base, err := protocol.DecodeBase(env.Raw)
	if err != nil {
		h.ack(env.ClientID, "", false, protocol.ErrProtoBadRequest, "malformed json")
		return
	}

	switch base.Type {
	case protocol.TypeFind:
		h.handleFind(env)
	case protocol.TypeCancelFind:
		h.handleCancelFind(env)
	case protocol.TypeReplace:
		h.handleReplace(env)
	case protocol.TypeAdjust:
		h.handleAdjust(env)
	case protocol.TypeConfirm:
		h.handleConfirm(env)
	case protocol.TypeCancel:
		h.handleCancelAdjust(env)
	case protocol.TypeSample:
		h.handleSample(env)
	case protocol.TypePatternSave:
		h.handlePatternSave(env)
	case protocol.TypePatternLoad:
		h.handlePatternLoad(env)
	case protocol.TypePatternList:
		h.handlePatternList(env)
	case protocol.TypeRegionGet:
		h.handleRegionGet(env)
	case protocol.TypeImportWorld:
		h.handleImportWorld(env)
	case protocol.TypeUndo:
		h.handleUndoRedo(env, true)
	case protocol.TypeRedo:
		h.handleUndoRedo(env, false)
	default:
		h.ack(env.ClientID, base.Type, false, protocol.ErrProtoBadRequest, "unknown message type")
	}
}

func (h *Host) ack(clientID, ackFor string, accepted bool, code, message string) {
	h.send(clientID, protocol.AckMsg{
		Type:            protocol.TypeAck,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		Accepted:        accepted,
		Code:            code,
		Message:         message,
	})
}

func (h *Host) handleFind(env Envelope) {
	var msg protocol.FindMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeFind, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}

	var p pattern.Pattern
	var err error
	switch {
	case msg.Pattern != nil:
		p, err = patternFromWire(*msg.Pattern)
	case msg.TemplateName != "":
		p, err = h.loadTemplate(msg.TemplateName)
	default:
		err = pattern.ErrEmpty
	}
	if err != nil {
		h.ack(env.ClientID, protocol.TypeFind, false, findErrCode(err), err.Error())
		return
	}

	var scope *volume.Box
	if msg.Scope != nil {
		b := boxFromWire(*msg.Scope)
		scope = &b
	}

	s, err := h.engine.StartSearch(p, scope, msg.MatchRotations)
	if err != nil {
		h.ack(env.ClientID, protocol.TypeFind, false, protocol.ErrNoVolume, err.Error())
		return
	}
	h.search = s
	h.findReqID = msg.ReqID
	h.findPat = p
	h.lastMatches = nil
	h.haveMatches = false
	h.ack(env.ClientID, protocol.TypeFind, true, "", "")
}

func findErrCode(err error) string {
	switch {
	case errors.Is(err, pattern.ErrEmpty):
		return protocol.ErrEmptyPattern
	case errors.Is(err, templates.ErrNotFound):
		return protocol.ErrPatternNotFound
	}
	return protocol.ErrBadRequest
}

func (h *Host) handleCancelFind(env Envelope) {
	h.engine.CancelSearch()
	h.ack(env.ClientID, protocol.TypeCancelFind, true, "", "")
}

func (h *Host) handleReplace(env Envelope) {
	var msg protocol.ReplaceMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeReplace, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	if !h.haveMatches {
		h.ack(env.ClientID, protocol.TypeReplace, false, protocol.ErrNoMatches, "no completed search to replace")
		return
	}

	reps := make([]pattern.Pattern, 0, len(msg.Replacements)+len(msg.TemplateNames))
	for _, wp := range msg.Replacements {
		p, err := patternFromWire(wp)
		if err != nil {
			h.ack(env.ClientID, protocol.TypeReplace, false, findErrCode(err), err.Error())
			return
		}
		reps = append(reps, p)
	}
	for _, name := range msg.TemplateNames {
		p, err := h.loadTemplate(name)
		if err != nil {
			h.ack(env.ClientID, protocol.TypeReplace, false, findErrCode(err), err.Error())
			return
		}
		reps = append(reps, p)
	}

	_, err := h.engine.ExecuteReplace(h.lastMatches, h.findPat, reps, msg.RandomRotation)
	if err != nil {
		h.ack(env.ClientID, protocol.TypeReplace, false, replaceErrCode(err), err.Error())
		return
	}
	// The match set is consumed: a new FIND is needed before the next
	// REPLACE.
	h.lastMatches = nil
	h.haveMatches = false
	h.ack(env.ClientID, protocol.TypeReplace, true, "", "")
}

func replaceErrCode(err error) string {
	switch {
	case errors.Is(err, edit.ErrNoMatches):
		return protocol.ErrNoMatches
	case errors.Is(err, edit.ErrNoReplacement):
		return protocol.ErrNoReplacement
	case errors.Is(err, edit.ErrNoVolume):
		return protocol.ErrNoVolume
	}
	return protocol.ErrInternal
}

func (h *Host) handleAdjust(env Envelope) {
	var msg protocol.AdjustMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeAdjust, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	if err := h.engine.ApplyOffsetAdjustment(vecFromWire(msg.Offset)); err != nil {
		h.ack(env.ClientID, protocol.TypeAdjust, false, adjustErrCode(err), err.Error())
		return
	}
	h.ack(env.ClientID, protocol.TypeAdjust, true, "", "")
}

func (h *Host) handleConfirm(env Envelope) {
	if err := h.engine.ConfirmAdjustment(); err != nil {
		h.ack(env.ClientID, protocol.TypeConfirm, false, adjustErrCode(err), err.Error())
		return
	}
	h.ack(env.ClientID, protocol.TypeConfirm, true, "", "")
}

func (h *Host) handleCancelAdjust(env Envelope) {
	if err := h.engine.CancelAdjustment(); err != nil {
		h.ack(env.ClientID, protocol.TypeCancel, false, adjustErrCode(err), err.Error())
		return
	}
	h.ack(env.ClientID, protocol.TypeCancel, true, "", "")
}

func adjustErrCode(err error) string {
	if errors.Is(err, edit.ErrNotAdjusting) {
		return protocol.ErrNotAdjusting
	}
	return protocol.ErrInternal
}

func (h *Host) handleSample(env Envelope) {
	var msg protocol.SampleMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeSample, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	region := h.vol.SampleRegion(boxFromWire(msg.Box))
	p, err := pattern.FromRegion(region, msg.Name)
	if err != nil {
		h.ack(env.ClientID, protocol.TypeSample, false, protocol.ErrEmptyPattern, err.Error())
		return
	}
	h.send(env.ClientID, protocol.PatternMsg{
		Type:            protocol.TypePattern,
		ProtocolVersion: protocol.Version,
		ReqID:           msg.ReqID,
		Pattern:         patternToWire(p),
	})
}

func (h *Host) loadTemplate(name string) (pattern.Pattern, error) {
	if h.templates == nil {
		return pattern.Pattern{}, templates.ErrNotFound
	}
	return h.templates.Load(name)
}

func (h *Host) handlePatternSave(env Envelope) {
	var msg protocol.PatternSaveMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypePatternSave, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	if h.templates == nil {
		h.ack(env.ClientID, protocol.TypePatternSave, false, protocol.ErrBadRequest, "no template store configured")
		return
	}
	p, err := patternFromWire(msg.Pattern)
	if err != nil {
		h.ack(env.ClientID, protocol.TypePatternSave, false, findErrCode(err), err.Error())
		return
	}
	if err := h.templates.Save(p); err != nil {
		h.ack(env.ClientID, protocol.TypePatternSave, false, protocol.ErrBadRequest, err.Error())
		return
	}
	h.ack(env.ClientID, protocol.TypePatternSave, true, "", "")
}

func (h *Host) handlePatternLoad(env Envelope) {
	var msg protocol.PatternLoadMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypePatternLoad, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	p, err := h.loadTemplate(msg.Name)
	if err != nil {
		h.ack(env.ClientID, protocol.TypePatternLoad, false, findErrCode(err), err.Error())
		return
	}
	h.send(env.ClientID, protocol.PatternMsg{
		Type:            protocol.TypePattern,
		ProtocolVersion: protocol.Version,
		ReqID:           msg.ReqID,
		Pattern:         patternToWire(p),
	})
}

func (h *Host) handlePatternList(env Envelope) {
	var msg protocol.PatternListMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypePatternList, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	var names []string
	if h.templates != nil {
		var err error
		names, err = h.templates.List()
		if err != nil {
			h.ack(env.ClientID, protocol.TypePatternList, false, protocol.ErrInternal, err.Error())
			return
		}
	}
	h.send(env.ClientID, protocol.PatternsMsg{
		Type:            protocol.TypePatterns,
		ProtocolVersion: protocol.Version,
		ReqID:           msg.ReqID,
		Names:           names,
	})
}

func (h *Host) handleRegionGet(env Envelope) {
	var msg protocol.RegionGetMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeRegionGet, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}
	box := boxFromWire(msg.Box)
	h.send(env.ClientID, protocol.RegionMsg{
		Type:            protocol.TypeRegion,
		ProtocolVersion: protocol.Version,
		ReqID:           msg.ReqID,
		Box:             boxToWire(box),
		Encoding:        "RLE",
		Data:            encoding.EncodeRegion(h.vol, box),
	})
}

func (h *Host) handleImportWorld(env Envelope) {
	var msg protocol.ImportWorldMsg
	if err := json.Unmarshal(env.Raw, &msg); err != nil {
		h.ack(env.ClientID, protocol.TypeImportWorld, false, protocol.ErrProtoBadRequest, err.Error())
		return
	}

	// Region files are only read from inside the configured data dir.
	path := filepath.Join(h.cfg.DataDir, filepath.Clean("/"+msg.Path))
	data, err := os.ReadFile(path)
	if err != nil {
		h.ack(env.ClientID, protocol.TypeImportWorld, false, protocol.ErrImportFailed, err.Error())
		return
	}

	var crop *volume.Box
	var minChunk, maxChunk *[2]int
	if msg.Crop != nil {
		b := boxFromWire(*msg.Crop)
		crop = &b
		minChunk = &[2]int{b.Min.X >> 4, b.Min.Z >> 4}
		maxChunk = &[2]int{b.Max.X >> 4, b.Max.Z >> 4}
	}

	world := mcworld.NewWorld()
	if err := world.ReadRegion(msg.RegionPos, minChunk, maxChunk, data); err != nil {
		h.ack(env.ClientID, protocol.TypeImportWorld, false, protocol.ErrImportFailed, err.Error())
		return
	}
	rules := make(mcworld.Rules, len(msg.Rules))
	for glob, id := range msg.Rules {
		rules[glob] = volume.TypeID(id)
	}
	imported, err := world.Convert(rules, crop)
	if err != nil {
		h.ack(env.ClientID, protocol.TypeImportWorld, false, protocol.ErrImportFailed, err.Error())
		return
	}

	// Importing replaces the volume wholesale, so any in-flight search
	// or open adjustment is finished first and the histories reset.
	if err := h.engine.Deactivate(); err != nil {
		h.ack(env.ClientID, protocol.TypeImportWorld, false, protocol.ErrInternal, err.Error())
		return
	}
	h.search = nil
	h.lastMatches = nil
	h.haveMatches = false
	h.undoStack.Reset()
	h.vol.Restore(imported)
	h.log.Printf("world import path=%s cells=%d chunks=%d", path, h.vol.Len(), world.LoadedChunks())
	h.ack(env.ClientID, protocol.TypeImportWorld, true, "", fmt.Sprintf("%d cells imported", h.vol.Len()))
}

func (h *Host) handleUndoRedo(env Envelope, undo bool) {
	ackFor := protocol.TypeRedo
	if undo {
		ackFor = protocol.TypeUndo
	}
	if h.engine.Adjusting() {
		h.ack(env.ClientID, ackFor, false, protocol.ErrBadRequest, "adjustment in progress")
		return
	}
	ok := false
	if undo {
		ok = h.undoStack.Undo(h.vol)
	} else {
		ok = h.undoStack.Redo(h.vol)
	}
	if !ok {
		h.ack(env.ClientID, ackFor, false, protocol.ErrBadRequest, "history empty")
		return
	}
	h.ack(env.ClientID, ackFor, true, "", "")
}
