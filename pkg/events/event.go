package events

import "time"

// Event is the contract every published system event satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used by the domain constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published by the backend.
const (
	TypeUserLoggedIn      = "USER_LOGIN"
	TypeUserRegistered    = "USER_REGISTERED"
	TypeUserDeleted       = "USER_DELETED"
	TypeDocumentIngested  = "DOCUMENT_INGESTED"
	TypeDocumentDeleted   = "DOCUMENT_DELETED"
	TypeChatTurnCompleted = "CHAT_TURN_COMPLETED"
)

func NewUserLoggedIn(userId, email string) Event {
	return BaseEvent{
		Type:       TypeUserLoggedIn,
		Data:       map[string]interface{}{"user_id": userId, "email": email},
		OccurredAt: time.Now(),
	}
}

func NewUserRegistered(userId, email, role string) Event {
	return BaseEvent{
		Type:       TypeUserRegistered,
		Data:       map[string]interface{}{"user_id": userId, "email": email, "role": role},
		OccurredAt: time.Now(),
	}
}

func NewUserDeleted(userId, email, deletedBy string) Event {
	return BaseEvent{
		Type:       TypeUserDeleted,
		Data:       map[string]interface{}{"user_id": userId, "email": email, "deleted_by": deletedBy},
		OccurredAt: time.Now(),
	}
}

func NewDocumentIngested(documentId, userId, title string) Event {
	return BaseEvent{
		Type:       TypeDocumentIngested,
		Data:       map[string]interface{}{"document_id": documentId, "user_id": userId, "title": title},
		OccurredAt: time.Now(),
	}
}

func NewDocumentDeleted(documentId, userId string) Event {
	return BaseEvent{
		Type:       TypeDocumentDeleted,
		Data:       map[string]interface{}{"document_id": documentId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}

func NewChatTurnCompleted(documentId, userId string) Event {
	return BaseEvent{
		Type:       TypeChatTurnCompleted,
		Data:       map[string]interface{}{"document_id": documentId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}
