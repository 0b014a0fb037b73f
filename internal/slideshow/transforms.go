package slideshow

import (
	"image"

	"slidey/internal/filter"
)

// Transforms caches per-slide edits keyed by slide index. Entries are
// optional: a missing entry means the slide is shown as decoded.
type Transforms struct {
	rotations map[int]int
	enhanced  map[int]image.Image
	smoothed  map[int]image.Image
}

// NewTransforms creates an empty cache.
func NewTransforms() *Transforms {
	t := &Transforms{}
	t.Reset()
	return t
}

// Reset drops every cached edit.
func (t *Transforms) Reset() {
	t.rotations = make(map[int]int)
	t.enhanced = make(map[int]image.Image)
	t.smoothed = make(map[int]image.Image)
}

// NormalizeRotation maps any multiple of 90 degrees onto 0, 90, 180 or 270.
func NormalizeRotation(deg int) int {
	return filter.NormalizeRotation(deg)
}

// Rotation returns the stored clockwise rotation for slide i, 0 if none.
func (t *Transforms) Rotation(i int) int {
	return t.rotations[i]
}

// SetRotation stores a clockwise rotation for slide i.
func (t *Transforms) SetRotation(i, deg int) {
	deg = NormalizeRotation(deg)
	if deg == 0 {
		delete(t.rotations, i)
		return
	}
	t.rotations[i] = deg
}

// Enhanced returns the enhanced bitmap for slide i, if any.
func (t *Transforms) Enhanced(i int) (image.Image, bool) {
	img, ok := t.enhanced[i]
	return img, ok
}

// SetEnhanced caches an enhanced bitmap for slide i.
func (t *Transforms) SetEnhanced(i int, img image.Image) {
	t.enhanced[i] = img
}

// ClearEnhanced drops the enhanced bitmap for slide i.
func (t *Transforms) ClearEnhanced(i int) {
	delete(t.enhanced, i)
}

// Smoothed returns the smoothed bitmap for slide i, if any.
func (t *Transforms) Smoothed(i int) (image.Image, bool) {
	img, ok := t.smoothed[i]
	return img, ok
}

// SetSmoothed caches a smoothed bitmap for slide i.
func (t *Transforms) SetSmoothed(i int, img image.Image) {
	t.smoothed[i] = img
}

// ClearSmoothed drops the smoothed bitmap for slide i.
func (t *Transforms) ClearSmoothed(i int) {
	delete(t.smoothed, i)
}

// Len reports how many entries each cache holds.
func (t *Transforms) Len() (rotations, enhanced, smoothed int) {
	return len(t.rotations), len(t.enhanced), len(t.smoothed)
}
