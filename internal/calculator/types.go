package calculator

import "dotcalc/internal/engine"

// StateResponse is the JSON projection of a session returned by every
// session endpoint.
type StateResponse struct {
	SessionID string `json:"session_id"`
	engine.State
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"` // keyboard names, e.g. "5", "+", "Enter", "Backspace"
}

// ActionRequest is the JSON body for POST /calculator/sessions/{id}/actions.
type ActionRequest struct {
	Action string `json:"action"` // button name, e.g. "sqrt", "ms", "negate"
}
