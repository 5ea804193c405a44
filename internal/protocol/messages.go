package protocol

// WireCell is one pattern or volume cell on the wire.
type WireCell struct {
	Pos    [3]int `json:"pos"`
	Type   uint16 `json:"block"`
	Orient uint8  `json:"orient,omitempty"`
	Shape  string `json:"shape,omitempty"`
}

// WirePattern carries a pattern as a sparse cell list.
type WirePattern struct {
	Name  string     `json:"name,omitempty"`
	Cells []WireCell `json:"cells"`
}

// WireBox is an inclusive axis-aligned coordinate range.
type WireBox struct {
	Min [3]int `json:"min"`
	Max [3]int `json:"max"`
}

// WireMatch is one accepted occurrence.
type WireMatch struct {
	Origin   [3]int `json:"origin"`
	Rotation int    `json:"rotation"`
}

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	VolumeCells     int    `json:"volume_cells"`
}

// FIND (client -> server): start a search. The pattern is either
// inline or a stored template name; Scope narrows the search.
type FindMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	ReqID           string       `json:"req_id"`
	Pattern         *WirePattern `json:"pattern,omitempty"`
	TemplateName    string       `json:"template_name,omitempty"`
	Scope           *WireBox     `json:"scope,omitempty"`
	MatchRotations  bool         `json:"match_rotations"`
}

// REPLACE (client -> server): swap the matches of the last completed
// search using one or more replacement patterns.
type ReplaceMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	ReqID           string        `json:"req_id"`
	Replacements    []WirePattern `json:"replacements"`
	TemplateNames   []string      `json:"template_names,omitempty"`
	RandomRotation  bool          `json:"random_rotation,omitempty"`
}

// ADJUST (client -> server): nudge the inserted batch to a cumulative
// offset from the swap position.
type AdjustMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
	Offset          [3]int `json:"offset"`
}

// SAMPLE (client -> server): build a pattern from a volume sub-region.
type SampleMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	ReqID           string  `json:"req_id"`
	Box             WireBox `json:"box"`
	Name            string  `json:"name,omitempty"`
}

// PATTERN_SAVE / PATTERN_LOAD / PATTERN_LIST (client -> server)
type PatternSaveMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ReqID           string      `json:"req_id"`
	Pattern         WirePattern `json:"pattern"`
}

type PatternLoadMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
	Name            string `json:"name"`
}

type PatternListMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
}

// REGION_GET (client -> server): fetch a dense RLE region payload.
type RegionGetMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	ReqID           string  `json:"req_id"`
	Box             WireBox `json:"box"`
}

// IMPORT_WORLD (client -> server): convert a Minecraft region file on
// the server into volume cells using glob conversion rules.
type ImportWorldMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion string            `json:"protocol_version"`
	ReqID           string            `json:"req_id"`
	Path            string            `json:"path"`
	RegionPos       [2]int            `json:"region_pos"`
	Rules           map[string]uint16 `json:"rules"`
	Crop            *WireBox          `json:"crop,omitempty"`
}

// UNDO / REDO (client -> server): step the committed-operation
// history. The same shape serves both directions.
type UndoMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
}

// ACK (server -> client): request outcome.
type AckMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for"`
	Accepted        bool   `json:"accepted"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
}

// SEARCH_PROGRESS (server -> client): emitted after every search batch.
type SearchProgressMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	MatchCount      int    `json:"match_count"`
	Searching       bool   `json:"searching"`
	Progress        int    `json:"progress"`
	Cancelled       bool   `json:"cancelled,omitempty"`
}

// MATCHES (server -> client): final result of a completed search.
type MatchesMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ReqID           string      `json:"req_id"`
	Matches         []WireMatch `json:"matches"`
}

// ADJUST_STATE (server -> client)
type AdjustStateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Active          bool   `json:"active"`
	Offset          [3]int `json:"offset"`
}

// PATTERN (server -> client): one pattern, from SAMPLE or PATTERN_LOAD.
type PatternMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ReqID           string      `json:"req_id"`
	Pattern         WirePattern `json:"pattern"`
}

// PATTERNS (server -> client): stored template names.
type PatternsMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	ReqID           string   `json:"req_id"`
	Names           []string `json:"names"`
}

// REGION (server -> client): dense region payload, RLE encoded.
type RegionMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	ReqID           string  `json:"req_id"`
	Box             WireBox `json:"box"`
	Encoding        string  `json:"encoding"` // "RLE"
	Data            string  `json:"data"`
}
