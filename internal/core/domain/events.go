package domain

import "fmt"

const (
	EntityList     = "list"
	EntitySchedule = "schedule"
	EntityLibrary  = "library"

	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionAssigned = "assigned"
	ActionSwapped  = "swapped"
	ActionReloaded = "reloaded"
)

// ChangeEvent describes a committed mutation for live subscribers.
type ChangeEvent struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     string         `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func NewChangeEvent(entity, action, id string, extra map[string]any) ChangeEvent {
	return ChangeEvent{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}
