package model

import "encoding/json"

// GameState is the externally observable state of the tracked game window.
// Active is nil until the first poll completes.
type GameState struct {
	Active    *bool   `json:"active,omitempty"    yaml:"active,omitempty"`
	Bounds    *Bounds `json:"bounds,omitempty"    yaml:"bounds,omitempty"`
	ProcessID int     `json:"processId,omitempty" yaml:"process_id,omitempty"`
}

// IsActive reports whether the game was the foreground window on the last poll.
func (s GameState) IsActive() bool {
	return s.Active != nil && *s.Active
}

// Fingerprint serializes the observable fields into a comparable form.
// Two states with equal fingerprints are indistinguishable to consumers.
func (s GameState) Fingerprint() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// Clone returns a deep copy so consumers never share pointers with the tracker.
func (s GameState) Clone() GameState {
	out := GameState{ProcessID: s.ProcessID}
	if s.Active != nil {
		active := *s.Active
		out.Active = &active
	}
	if s.Bounds != nil {
		bounds := *s.Bounds
		out.Bounds = &bounds
	}
	return out
}
