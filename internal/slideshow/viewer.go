package slideshow

import (
	"fmt"
	"image"

	"slidey/internal/filter"
	"slidey/internal/logging"
	"slidey/internal/viewport"
)

// FilterFunc turns one bitmap into another.
type FilterFunc func(image.Image) (image.Image, error)

// RotateFunc rotates a bitmap clockwise by a multiple of 90 degrees.
type RotateFunc func(image.Image, int) (image.Image, error)

// Viewer is the slideshow as the window sees it: the collection, the
// cached edits, and the zoom and pan of the image on screen. It is not safe
// for concurrent use; the UI goroutine owns it.
type Viewer struct {
	Enhancer FilterFunc
	Smoother FilterFunc
	Rotator  RotateFunc
	Logger   logging.LoggerFunc

	slides     *Collection
	transforms *Transforms
	view       viewport.State

	display image.Image
}

// NewViewer returns an empty viewer wired to the default filters.
func NewViewer(logger logging.LoggerFunc) *Viewer {
	if logger == nil {
		logger = func(string) {}
	}
	return &Viewer{
		Enhancer: filter.AutoEnhance,
		Smoother: func(img image.Image) (image.Image, error) {
			return filter.NoiseReduction(img, filter.DefaultNoiseLevel, filter.DefaultSharpness)
		},
		Rotator:    filter.Rotate,
		Logger:     logger,
		slides:     NewCollection(nil),
		transforms: NewTransforms(),
		view:       viewport.New(),
	}
}

// SetSlides replaces the collection and forgets every edit.
func (v *Viewer) SetSlides(slides []Slide) {
	v.slides.Set(slides)
	v.Reset()
}

// Reset clears the cached edits and fits the current image.
func (v *Viewer) Reset() {
	v.transforms.Reset()
	v.view.Reset()
	v.refresh()
}

// Slides exposes the collection for read access.
func (v *Viewer) Slides() *Collection {
	return v.slides
}

// Transforms exposes the per-slide edit cache for read access.
func (v *Viewer) Transforms() *Transforms {
	return v.transforms
}

// Viewport returns a copy of the current zoom and pan.
func (v *Viewer) Viewport() viewport.State {
	return v.view
}

// SetViewSize records the size of the area the image is drawn into. A
// smaller view has less overflow, so the pan offset is clamped again.
func (v *Viewer) SetViewSize(width, height float64) {
	v.view.View = viewport.Size{Width: width, Height: height}
	if v.display != nil {
		v.view.ClampOffset(v.DisplaySize())
	}
}

// SetPanStep changes how far one arrow press pans.
func (v *Viewer) SetPanStep(step float64) {
	if step > 0 {
		v.view.PanStep = step
	}
}

// Current returns the slide on screen.
func (v *Viewer) Current() (Slide, bool) {
	return v.slides.Current()
}

// DisplayImage is the bitmap to draw: smoothed, else enhanced, else the
// decoded original, with the slide's rotation applied. It is nil when
// there is nothing to show.
func (v *Viewer) DisplayImage() image.Image {
	return v.display
}

// DisplaySize is the size of DisplayImage in pixels.
func (v *Viewer) DisplaySize() viewport.Size {
	if v.display == nil {
		return viewport.Size{}
	}
	b := v.display.Bounds()
	return viewport.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Next moves to the following slide with a fitted view.
func (v *Viewer) Next() bool {
	if v.slides.IsEmpty() {
		return false
	}
	v.slides.Next()
	v.view.Reset()
	v.refresh()
	return true
}

// Previous moves to the preceding slide with a fitted view.
func (v *Viewer) Previous() bool {
	if v.slides.IsEmpty() {
		return false
	}
	v.slides.Previous()
	v.view.Reset()
	v.refresh()
	return true
}

// ZoomIn magnifies the current image by one zoom step.
func (v *Viewer) ZoomIn() bool {
	if v.display == nil {
		return false
	}
	v.view.ZoomIn()
	return true
}

// ZoomOut shrinks the current image by one zoom step.
func (v *Viewer) ZoomOut() bool {
	if v.display == nil {
		return false
	}
	v.view.ZoomOut()
	return true
}

// ScaleToNative shows the image at one image pixel per view unit.
func (v *Viewer) ScaleToNative() bool {
	return v.view.ScaleToNative(v.DisplaySize())
}

// ScaleToFill covers the view along the image's dominant axis.
func (v *Viewer) ScaleToFill() bool {
	return v.view.ScaleToFill(v.DisplaySize())
}

// RotateClockwise turns the current slide a quarter turn clockwise.
func (v *Viewer) RotateClockwise() bool {
	return v.rotate(90)
}

// RotateCounterClockwise turns the current slide a quarter turn counter-clockwise.
func (v *Viewer) RotateCounterClockwise() bool {
	return v.rotate(-90)
}

func (v *Viewer) rotate(delta int) bool {
	if v.slides.IsEmpty() {
		return false
	}
	i := v.slides.Index()
	v.transforms.SetRotation(i, v.transforms.Rotation(i)+delta)
	v.view.Reset()
	v.refresh()
	return true
}

// Enhance auto-enhances the decoded original of the current slide. Any
// smoothing done before is dropped since it was computed from another source.
func (v *Viewer) Enhance() bool {
	slide, ok := v.slides.Current()
	if !ok || v.Enhancer == nil {
		return false
	}
	enhanced, err := v.Enhancer(slide.Image)
	if err != nil {
		v.Logger(fmt.Sprintf("enhance %s: %v", slide.Path, err))
		return false
	}
	i := v.slides.Index()
	v.transforms.SetEnhanced(i, enhanced)
	v.transforms.ClearSmoothed(i)
	v.refresh()
	return true
}

// RemoveEnhancement drops the enhanced bitmap of the current slide.
func (v *Viewer) RemoveEnhancement() bool {
	if v.slides.IsEmpty() {
		return false
	}
	i := v.slides.Index()
	if _, ok := v.transforms.Enhanced(i); !ok {
		return false
	}
	v.transforms.ClearEnhanced(i)
	v.refresh()
	return true
}

// Smooth noise-reduces whatever the current slide shows now, so repeated
// smoothing compounds.
func (v *Viewer) Smooth() bool {
	slide, ok := v.slides.Current()
	if !ok || v.Smoother == nil {
		return false
	}
	i := v.slides.Index()
	smoothed, err := v.Smoother(v.source(i, slide))
	if err != nil {
		v.Logger(fmt.Sprintf("smooth %s: %v", slide.Path, err))
		return false
	}
	v.transforms.SetSmoothed(i, smoothed)
	v.refresh()
	return true
}

// RemoveSmoothing drops the smoothed bitmap of the current slide.
func (v *Viewer) RemoveSmoothing() bool {
	if v.slides.IsEmpty() {
		return false
	}
	i := v.slides.Index()
	if _, ok := v.transforms.Smoothed(i); !ok {
		return false
	}
	v.transforms.ClearSmoothed(i)
	v.refresh()
	return true
}

// source is the unrotated bitmap for slide i.
func (v *Viewer) source(i int, slide Slide) image.Image {
	if img, ok := v.transforms.Smoothed(i); ok {
		return img
	}
	if img, ok := v.transforms.Enhanced(i); ok {
		return img
	}
	return slide.Image
}

// refresh recomputes the display bitmap after the index or an edit changed.
// A failed rotation keeps the previous bitmap.
func (v *Viewer) refresh() {
	slide, ok := v.slides.Current()
	if !ok {
		v.display = nil
		return
	}
	i := v.slides.Index()
	img := v.source(i, slide)
	if deg := v.transforms.Rotation(i); deg != 0 && v.Rotator != nil {
		rotated, err := v.Rotator(img, deg)
		if err != nil {
			v.Logger(fmt.Sprintf("rotate %s: %v", slide.Path, err))
			return
		}
		img = rotated
	}
	v.display = img
}

// HandleArrow applies an arrow key. Left and right pan a zoomed image while
// there is more of it to reveal and otherwise change slide. Up and down only
// ever pan.
func (v *Viewer) HandleArrow(dir viewport.Direction) bool {
	if v.display == nil {
		return false
	}
	if v.view.IsZoomed() && v.view.Pan(v.DisplaySize(), dir) {
		return true
	}
	switch dir {
	case viewport.Left:
		return v.Previous()
	case viewport.Right:
		return v.Next()
	}
	return false
}

// HandleRune applies a character key. Characters without a binding advance
// to the next slide unless the image is zoomed.
func (v *Viewer) HandleRune(r rune) bool {
	switch r {
	case '+', '=':
		return v.ZoomIn()
	case '-', '_':
		return v.ZoomOut()
	case 's', 'S':
		return v.ScaleToNative()
	case 'f', 'F':
		return v.ScaleToFill()
	case 'r':
		return v.RotateClockwise()
	case 'R':
		return v.RotateCounterClockwise()
	case 'a':
		return v.Enhance()
	case 'A':
		return v.RemoveEnhancement()
	case 'm':
		return v.Smooth()
	case 'M':
		return v.RemoveSmoothing()
	}
	if v.view.IsZoomed() {
		return false
	}
	return v.Next()
}
