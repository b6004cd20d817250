package visualizer

import "image"

// Layout places bars left to right, bottom-aligned in a Width x Height area.
type Layout struct {
	Width    int
	Height   int
	BarWidth int
	Gap      int
}

// Count is how many bars fit when the tallest is as high as the area and
// heights grow by BarWidth.
func (l Layout) Count() int {
	if l.BarWidth <= 0 {
		return 0
	}
	return l.Height / l.BarWidth
}

// Rect is the rectangle of bar i with the given height.
func (l Layout) Rect(i, value int) image.Rectangle {
	x := i * (l.BarWidth + l.Gap)
	return image.Rect(x, l.Height-value, x+l.BarWidth, l.Height)
}
