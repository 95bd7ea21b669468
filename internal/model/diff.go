package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of change detected between two polls.
type ChangeType string

const (
	ChangeActivated   ChangeType = "activated"
	ChangeDeactivated ChangeType = "deactivated"
	ChangeChanged     ChangeType = "changed"
)

// StateChange describes a single observable game-state transition.
type StateChange struct {
	Type    ChangeType           `json:"type"`
	TS      int64                `json:"ts"`
	State   GameState            `json:"state"`
	Changes map[string][2]string `json:"changes,omitempty"` // field -> [old, new]
}

// DiffGameState compares two states and returns the change, or nil when
// nothing observable differs.
func DiffGameState(prev, curr GameState) *StateChange {
	diffs := diffProperties(prev, curr)
	if len(diffs) == 0 {
		return nil
	}

	changeType := ChangeChanged
	if _, ok := diffs["a"]; ok {
		if curr.IsActive() {
			changeType = ChangeActivated
		} else {
			changeType = ChangeDeactivated
		}
	}

	return &StateChange{
		Type:    changeType,
		TS:      time.Now().Unix(),
		State:   curr.Clone(),
		Changes: diffs,
	}
}

// diffProperties compares two states field by field.
func diffProperties(prev, curr GameState) map[string][2]string {
	diffs := make(map[string][2]string)

	if a, b := activeString(prev.Active), activeString(curr.Active); a != b {
		diffs["a"] = [2]string{a, b}
	}
	if a, b := boundsString(prev.Bounds), boundsString(curr.Bounds); a != b {
		diffs["b"] = [2]string{a, b}
	}
	if prev.ProcessID != curr.ProcessID {
		diffs["p"] = [2]string{
			fmt.Sprintf("%d", prev.ProcessID),
			fmt.Sprintf("%d", curr.ProcessID),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func activeString(a *bool) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%v", *a)
}

func boundsString(b *Bounds) string {
	if b == nil {
		return ""
	}
	return b.String()
}
