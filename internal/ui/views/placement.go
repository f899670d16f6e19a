package views

// Placement says on which side of the input the panel is drawn
type Placement int

const (
	PlaceBelow Placement = iota
	PlaceAbove
)

// Place anchors a panel of panelHeight lines to the input line at anchorY on
// a screen of screenHeight lines. Below is preferred; above is used only when
// the panel fits there and not below. It returns the panel's top line.
func Place(anchorY, panelHeight, screenHeight int) (Placement, int) {
	below := anchorY + 1
	if screenHeight <= 0 || below+panelHeight <= screenHeight {
		return PlaceBelow, below
	}
	if anchorY-panelHeight >= 0 {
		return PlaceAbove, anchorY - panelHeight
	}
	return PlaceBelow, below
}

// MaxPanelRows returns how many rows fit on the roomier side of the anchor
func MaxPanelRows(anchorY, screenHeight, frame int) int {
	room := max(screenHeight-anchorY-1, anchorY) - frame
	if room < 1 {
		return 1
	}
	return room
}
