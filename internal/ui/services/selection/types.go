package selection

// State is the controller's state
type State string

const (
	StateClosed           State = "closed"
	StateOpenBrowsing     State = "open-browsing"
	StateOpenAutoSelected State = "open-auto-selected"
)

// OpenPolicy decides what opens the panel
type OpenPolicy string

const (
	// OpenEager opens on focus
	OpenEager OpenPolicy = "eager"
	// OpenLazy opens on the first input after focus
	OpenLazy OpenPolicy = "lazy"
)

// ParseOpenPolicy maps a config string to an OpenPolicy, falling back to lazy
func ParseOpenPolicy(s string) (OpenPolicy, bool) {
	switch OpenPolicy(s) {
	case OpenLazy, "":
		return OpenLazy, true
	case OpenEager:
		return OpenEager, true
	default:
		return OpenLazy, false
	}
}

// Event types for selection changes

// CommittedEvent is published after a value was pushed into the binding
type CommittedEvent[T any] struct {
	Value T
	Auto  bool // came from an exact-match auto-selection
}

// StateChangedEvent is published on every state transition
type StateChangedEvent struct {
	From State
	To   State
}

// TextChangedEvent is published when the displayed input text is replaced
// by the controller, not by typing
type TextChangedEvent struct {
	Text string
}
