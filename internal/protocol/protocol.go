package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	// client -> server
	TypeHello       = "HELLO"
	TypeFind        = "FIND"
	TypeCancelFind  = "CANCEL_FIND"
	TypeReplace     = "REPLACE"
	TypeAdjust      = "ADJUST"
	TypeConfirm     = "CONFIRM"
	TypeCancel      = "CANCEL"
	TypeSample      = "SAMPLE"
	TypePatternSave = "PATTERN_SAVE"
	TypePatternLoad = "PATTERN_LOAD"
	TypePatternList = "PATTERN_LIST"
	TypeRegionGet   = "REGION_GET"
	TypeImportWorld = "IMPORT_WORLD"
	TypeUndo        = "UNDO"
	TypeRedo        = "REDO"

	// server -> client
	TypeWelcome        = "WELCOME"
	TypeAck            = "ACK"
	TypeSearchProgress = "SEARCH_PROGRESS"
	TypeMatches        = "MATCHES"
	TypeAdjustState    = "ADJUST_STATE"
	TypePattern        = "PATTERN"
	TypePatterns       = "PATTERNS"
	TypeRegion         = "REGION"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
