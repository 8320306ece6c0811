package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchDispatched       EventType = "SearchDispatched"
	EventSearchSucceeded        EventType = "SearchSucceeded"
	EventSearchFailed           EventType = "SearchFailed"
	EventStaleResponseDiscarded EventType = "StaleResponseDiscarded"
	EventRoleChanged            EventType = "RoleChanged"
	EventConfigLoaded           EventType = "ConfigLoaded"
	EventConfigSaved            EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchDispatchedEvent is emitted when a request leaves the client
type SearchDispatchedEvent struct {
	Seq      uint64
	Role     Role
	QueryLen int // the query itself is never published
}

func (e SearchDispatchedEvent) Type() EventType { return EventSearchDispatched }

// SearchSucceededEvent is emitted when a response is applied to the UI
type SearchSucceededEvent struct {
	Seq      uint64
	Results  int
	Duration time.Duration
}

func (e SearchSucceededEvent) Type() EventType { return EventSearchSucceeded }

// SearchFailedEvent is emitted when a failure is applied to the UI
type SearchFailedEvent struct {
	Seq      uint64
	Reason   string
	Err      error
	Duration time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// StaleResponseDiscardedEvent is emitted when an outcome arrives for a superseded request
type StaleResponseDiscardedEvent struct {
	Seq    uint64
	Latest uint64
}

func (e StaleResponseDiscardedEvent) Type() EventType { return EventStaleResponseDiscarded }

// RoleChangedEvent is emitted when the user switches role
type RoleChangedEvent struct {
	Role Role
}

func (e RoleChangedEvent) Type() EventType { return EventRoleChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
