package navigation

// None is the active index when no row is highlighted
const None = -1

// State holds the active-row state for the list currently displayed
type State struct {
	Active int
	Keys   []string // formatted rows of the displayed list
}

// Direction represents keyboard movements
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionHome Direction = "home"
	DirectionEnd  Direction = "end"
)

// Policy decides what happens to the active row when a new list arrives
type Policy string

const (
	// PolicyReset clears the active row on every new list
	PolicyReset Policy = "reset"
	// PolicyPreserve keeps the previously active row if its text is still listed
	PolicyPreserve Policy = "preserve"
)

// ParsePolicy maps a config string to a Policy, falling back to reset
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case PolicyReset, "":
		return PolicyReset, true
	case PolicyPreserve:
		return PolicyPreserve, true
	default:
		return PolicyReset, false
	}
}

// Event types for active-row changes
type ActiveChangedEvent struct {
	OldIndex int
	NewIndex int
}
