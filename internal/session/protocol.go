package session

import (
	"encoding/json"

	"github.com/inamate/flowdraw/internal/engine"
	"github.com/inamate/flowdraw/internal/store"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"

	// Input events
	TypeGesture = "gesture"
	TypeKey     = "key"

	// Toolbox
	TypeCreate      = "create"
	TypeCreateImage = "createImage"
	TypeDrop        = "drop"

	// Editing
	TypeEdit = "edit"
	TypeText = "text"
	TypeFont = "font"
	TypeZoom = "zoom"

	TypeViewport = "viewport"

	// Documents
	TypeLoad = "load"
	TypeSave = "save"

	// Replies
	TypeRender = "render"
	TypeState  = "state"
	TypeSaved  = "saved"
	TypeError  = "error"
)

// Edit operations carried by TypeEdit.
const (
	EditCopy   = "copy"
	EditCut    = "cut"
	EditPaste  = "paste"
	EditDelete = "delete"
	EditLock   = "lock"
	EditUnlock = "unlock"
)

// CreatePayload places a toolbox shape at (X, Y), or at the viewport centre
// when Center is set.
type CreatePayload struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Center bool    `json:"center,omitempty"`
}

type CreateImagePayload struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Center bool    `json:"center,omitempty"`
}

type EditPayload struct {
	Op string `json:"op"`
}

type TextPayload struct {
	EntityID string `json:"entityId"`
	Text     string `json:"text"`
}

type FontPayload struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
}

// ZoomPayload: Op is one of in, out, set, gesture, scroll. Value carries the
// zoom level, pinch factor or scroll delta.
type ZoomPayload struct {
	Op    string  `json:"op"`
	Value float64 `json:"value,omitempty"`
}

type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LoadPayload selects the document to edit. Sample loads the built-in flow
// into a new unsaved document.
type LoadPayload struct {
	DocumentID string `json:"documentId,omitempty"`
	Sample     bool   `json:"sample,omitempty"`
}

type SavePayload struct {
	DocumentID string `json:"documentId,omitempty"`
}

type StatePayload struct {
	DocumentID string                 `json:"documentId,omitempty"`
	Mode       string                 `json:"mode"`
	Zoom       float64                `json:"zoom"`
	Selection  []engine.SelectionItem `json:"selection"`
	Commands   []engine.DrawCommand   `json:"commands,omitempty"`
	Created    []string               `json:"created,omitempty"`
	Handled    *bool                  `json:"handled,omitempty"`
}

type SavedPayload struct {
	Document store.Meta `json:"document"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
