package canvas

// Line is a segment in scene coordinates.
type Line struct {
	From, To Point
}

const (
	gridSize  = 50
	gridRange = 2000
)

// Zoom scales the view one step in for a positive delta and one step out
// otherwise. A step that would leave [MinZoom, MaxZoom] is ignored. It
// reports whether the zoom level changed.
func (c *Canvas) Zoom(delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	factor := ZoomStep
	if delta <= 0 {
		factor = 1 / ZoomStep
	}
	next := c.zoom * factor
	if next < MinZoom || next > MaxZoom {
		return false
	}
	c.zoom = next
	return true
}

// ZoomFactor returns the current zoom level.
func (c *Canvas) ZoomFactor() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.zoom
}

// GridLines returns the background grid: vertical lines first, then
// horizontal ones, every gridSize units over [-gridRange, gridRange).
func GridLines() []Line {
	n := 2 * gridRange / gridSize
	lines := make([]Line, 0, 2*n)
	for x := -gridRange; x < gridRange; x += gridSize {
		lines = append(lines, Line{
			From: Point{X: float64(x), Y: -gridRange},
			To:   Point{X: float64(x), Y: gridRange},
		})
	}
	for y := -gridRange; y < gridRange; y += gridSize {
		lines = append(lines, Line{
			From: Point{X: -gridRange, Y: float64(y)},
			To:   Point{X: gridRange, Y: float64(y)},
		})
	}
	return lines
}
