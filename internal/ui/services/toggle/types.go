package toggle

// Reason says why the panel closed
type Reason string

const (
	ReasonCommit     Reason = "commit"
	ReasonAutoSelect Reason = "auto-select"
	ReasonEscape     Reason = "escape"
	ReasonTab        Reason = "tab"
	ReasonBlur       Reason = "blur"
	ReasonToggle     Reason = "toggle"
	ReasonExternal   Reason = "external" // the host wrote the committed value
)

// Committed reports whether the close finalized a selection
func (r Reason) Committed() bool {
	return r == ReasonCommit || r == ReasonAutoSelect
}

// Event types
type OpenedEvent struct{}

type ClosedEvent struct {
	Reason Reason
}
