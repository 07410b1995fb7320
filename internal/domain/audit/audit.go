package audit

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies what kind of record an entry refers to.
type EntityType string

const (
	EntityTypeTransaction EntityType = "TRANSACTION"
	EntityTypeListing     EntityType = "LISTING"
	EntityTypeUser        EntityType = "USER"
)

// Action identifies the operation recorded by an entry.
type Action string

const (
	ActionRequest        Action = "REQUEST"
	ActionAcceptRequest  Action = "ACCEPT_REQUEST"
	ActionSendContract   Action = "SEND_CONTRACT"
	ActionAcceptContract Action = "ACCEPT_CONTRACT"
	ActionPublish        Action = "PUBLISH"
	ActionLogin          Action = "LOGIN"
	ActionLogout         Action = "LOGOUT"
)

// Entry is one audit record. Entries are signed with an HMAC key when
// one is configured so tampering is detectable after the fact.
type Entry struct {
	ID         int64      `json:"id"`
	EntryID    uuid.UUID  `json:"entryId"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Action     Action     `json:"action"`
	Actor      string     `json:"actor"`
	Reason     string     `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Signature  []byte     `json:"signature,omitempty"`
}

// NewEntry creates an unsigned audit entry.
func NewEntry(entityType EntityType, entityID string, action Action, actor, reason string) *Entry {
	return &Entry{
		EntryID:    uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	}
}
