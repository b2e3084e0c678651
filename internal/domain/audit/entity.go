package audit

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type EntityType string

const (
	EntityAttendance   EntityType = "attendance"
	EntityLeaveRequest EntityType = "leave_request"
	EntityLeaveBalance EntityType = "leave_balance"
)

// Entry is an immutable record of a state change. Before and After hold
// JSON snapshots of the entity around the change.
type Entry struct {
	ID         string          `json:"id"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     Action          `json:"action"`
	ActorID    string          `json:"actor_id"`
	ActorEmail string          `json:"actor_email,omitempty"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	Message    string          `json:"message,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Filter struct {
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	ActorID    *string `json:"actor_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListResponse struct {
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
	Entries    []Entry `json:"entries"`
}
