package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCandidatesLoaded   EventType = "CandidatesLoaded"
	EventSourceFailed       EventType = "SourceFailed"
	EventError              EventType = "Error"
	EventScanStarted        EventType = "ScanStarted"
	EventScanCompleted      EventType = "ScanCompleted"
	EventSelectionCommitted EventType = "SelectionCommitted"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CandidatesLoadedEvent is emitted when a source produced (or reproduced) its candidates.
// A later event for the same source replaces the earlier one.
type CandidatesLoadedEvent struct {
	Source     string
	Candidates []Candidate
}

func (e CandidatesLoadedEvent) Type() EventType { return EventCandidatesLoaded }

// SourceFailedEvent is emitted when a source could not be read
type SourceFailedEvent struct {
	Source string
	Err    error
}

func (e SourceFailedEvent) Type() EventType { return EventSourceFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScanStartedEvent is emitted when source loading begins
type ScanStartedEvent struct {
	Sources []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when every source finished its initial load
type ScanCompletedEvent struct {
	CandidatesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// SelectionCommittedEvent is emitted when the user committed a candidate
type SelectionCommittedEvent struct {
	Candidate Candidate
	Auto      bool // committed by exact-match auto-selection
}

func (e SelectionCommittedEvent) Type() EventType { return EventSelectionCommitted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
