// Package slideshow holds the state of a running slideshow: the ordered
// images, the cursor into them, and the per-image transforms.
package slideshow

import (
	"image"
	"time"
)

// Slide is one decoded image in the show.
type Slide struct {
	Path    string
	Created time.Time
	Image   image.Image
}

// Collection is an ordered list of slides with a cursor that wraps at both ends.
type Collection struct {
	slides []Slide
	index  int
}

// NewCollection creates a collection positioned on its first slide.
func NewCollection(slides []Slide) *Collection {
	c := &Collection{}
	c.Set(slides)
	return c
}

// Set replaces the slides and moves the cursor to the first one.
func (c *Collection) Set(slides []Slide) {
	c.slides = slides
	c.index = 0
}

// Len returns the number of slides.
func (c *Collection) Len() int {
	return len(c.slides)
}

// IsEmpty reports whether there is nothing to show.
func (c *Collection) IsEmpty() bool {
	return len(c.slides) == 0
}

// Index returns the cursor position. It is 0 for an empty collection.
func (c *Collection) Index() int {
	return c.index
}

// At returns the slide at i.
func (c *Collection) At(i int) (Slide, bool) {
	if i < 0 || i >= len(c.slides) {
		return Slide{}, false
	}
	return c.slides[i], true
}

// Current returns the slide under the cursor.
func (c *Collection) Current() (Slide, bool) {
	return c.At(c.index)
}

// Next advances the cursor, wrapping from the last slide to the first.
func (c *Collection) Next() {
	if len(c.slides) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.slides)
}

// Previous moves the cursor back, wrapping from the first slide to the last.
func (c *Collection) Previous() {
	if len(c.slides) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.slides)) % len(c.slides)
}
