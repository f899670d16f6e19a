package views

// Viewport is the visible window over the panel rows. EnsureVisible is the
// scroll-into-view collaborator of the active row tracker.
type Viewport struct {
	Offset int
	Height int
}

// NewViewport creates a viewport showing height rows
func NewViewport(height int) *Viewport {
	if height < 1 {
		height = 1
	}
	return &Viewport{Height: height}
}

// EnsureVisible scrolls so that index is inside the window. It reports
// whether the offset changed.
func (v *Viewport) EnsureVisible(index int) bool {
	old := v.Offset
	if index < v.Offset {
		v.Offset = index
	} else if index >= v.Offset+v.Height {
		v.Offset = index - v.Height + 1
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	return old != v.Offset
}

// Reset scrolls back to the top
func (v *Viewport) Reset() {
	v.Offset = 0
}

// SetHeight resizes the window, keeping it inside count rows
func (v *Viewport) SetHeight(height, count int) {
	if height < 1 {
		height = 1
	}
	v.Height = height
	v.Clamp(count)
}

// Clamp keeps the window inside count rows
func (v *Viewport) Clamp(count int) {
	if last := count - v.Height; v.Offset > last {
		v.Offset = last
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// Window returns the visible row range [start, end) for count rows
func (v Viewport) Window(count int) (start, end int) {
	start = min(v.Offset, count)
	end = min(start+v.Height, count)
	return start, end
}
