// Package viewport tracks which rows of a buffer are on screen.
package viewport

// Viewport represents the visible portion of the buffer: height rows
// starting at the top line. The top line is kept in range so the last
// page is always full when the buffer is long enough.
type Viewport struct {
	top       int
	height    int
	lineCount int
}

// New creates a viewport showing height rows.
// Height is clamped to a minimum of 1.
func New(height int) *Viewport {
	return &Viewport{height: max(height, 1)}
}

// Top returns the first visible line.
func (v *Viewport) Top() int {
	return v.top
}

// Height returns the number of screen rows.
func (v *Viewport) Height() int {
	return v.height
}

// LineCount returns the buffer length the viewport scrolls over.
func (v *Viewport) LineCount() int {
	return v.lineCount
}

// Resize updates the viewport height.
func (v *Viewport) Resize(height int) {
	v.height = max(height, 1)
	v.clamp()
}

// SetLineCount updates the buffer length.
func (v *Viewport) SetLineCount(n int) {
	v.lineCount = max(n, 0)
	v.clamp()
}

// VisibleRange returns the visible lines as the half-open range [start, end).
// An empty buffer yields an empty range.
func (v *Viewport) VisibleRange() (start, end int) {
	return v.top, min(v.top+v.height, v.lineCount)
}

// IsLineVisible reports whether line is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	start, end := v.VisibleRange()
	return line >= start && line < end
}

// LineToScreenRow converts a buffer line to a screen row, or -1 if the line
// is not visible.
func (v *Viewport) LineToScreenRow(line int) int {
	if !v.IsLineVisible(line) {
		return -1
	}
	return line - v.top
}

// ScrollTo makes line the top line, within range.
func (v *Viewport) ScrollTo(line int) {
	v.top = line
	v.clamp()
}

// ScrollBy scrolls by delta lines; negative scrolls up.
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollTo(v.top + delta)
}

// PageUp scrolls up by one page.
func (v *Viewport) PageUp() {
	v.ScrollBy(-v.height)
}

// PageDown scrolls down by one page.
func (v *Viewport) PageDown() {
	v.ScrollBy(v.height)
}

// ScrollToTop scrolls to the first line.
func (v *Viewport) ScrollToTop() {
	v.ScrollTo(0)
}

// ScrollToBottom scrolls so the last line is on the bottom row.
func (v *Viewport) ScrollToBottom() {
	v.ScrollTo(v.maxTop())
}

// ScrollPercent returns how far down the buffer the viewport is, 0 to 100.
func (v *Viewport) ScrollPercent() float64 {
	maxTop := v.maxTop()
	if maxTop == 0 {
		return 0
	}
	return float64(v.top) / float64(maxTop) * 100
}

func (v *Viewport) maxTop() int {
	return max(v.lineCount-v.height, 0)
}

func (v *Viewport) clamp() {
	v.top = min(max(v.top, 0), v.maxTop())
}
