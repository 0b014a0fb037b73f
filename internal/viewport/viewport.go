// Package viewport holds the zoom and pan arithmetic for showing one image in a window.
//
// Zoom is expressed relative to the fit scale: 1.0 shows the whole image
// fitted to the window, 2.0 shows it twice that size. The pan offset moves
// the image centre away from the window centre.
package viewport

import "math"

const (
	// MinZoom and MaxZoom bound every zoom factor.
	MinZoom = 0.1
	MaxZoom = 10.0
	// ZoomStep is the factor applied by one zoom in or out.
	ZoomStep = 1.2

	// DefaultPanStep is how far one arrow press moves a zoomed image.
	DefaultPanStep = 50.0
	// panMargin keeps a pan from being offered for the last few units of overflow.
	panMargin = 10.0
)

// Size is a width and height in window units.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Offset is a pan displacement. Positive X moves the image right, positive Y down.
type Offset struct {
	X, Y float64
}

// Direction is a pan direction, named for the arrow key that requests it.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// FitScale is the scale that fits the whole image inside the view, keeping aspect ratio.
func FitScale(img, view Size) float64 {
	if img.IsEmpty() || view.IsEmpty() {
		return 1
	}
	return math.Min(view.Width/img.Width, view.Height/img.Height)
}

// FillScale is the scale that covers the view along the image's dominant axis:
// height for portrait images, width otherwise.
func FillScale(img, view Size) float64 {
	if img.IsEmpty() || view.IsEmpty() {
		return 1
	}
	if img.Height > img.Width {
		return view.Height / img.Height
	}
	return view.Width / img.Width
}

// ClampZoom bounds a zoom factor to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// State is the zoom and pan of the image currently on screen.
type State struct {
	Zoom    float64
	Offset  Offset
	View    Size
	PanStep float64
}

// New returns a fitted, centred state.
func New() State {
	return State{Zoom: 1, PanStep: DefaultPanStep}
}

// Reset fits the image and centres it.
func (s *State) Reset() {
	s.Zoom = 1
	s.Offset = Offset{}
}

// IsZoomed reports whether the image is larger than its fitted size.
func (s State) IsZoomed() bool {
	return s.Zoom > 1
}

// ZoomIn grows the image one step.
func (s *State) ZoomIn() {
	s.Zoom = ClampZoom(s.Zoom * ZoomStep)
}

// ZoomOut shrinks the image one step. Reaching the fitted size or below
// snaps back to fit and recentres.
func (s *State) ZoomOut() {
	s.Zoom = ClampZoom(s.Zoom / ZoomStep)
	if s.Zoom <= 1 {
		s.Reset()
	}
}

// ScaleToNative zooms so that one image pixel maps to one view unit.
func (s *State) ScaleToNative(img Size) bool {
	if img.IsEmpty() || s.View.IsEmpty() {
		return false
	}
	s.Zoom = ClampZoom(1 / FitScale(img, s.View))
	s.Offset = Offset{}
	return true
}

// ScaleToFill zooms so that the image covers the view along its dominant axis.
func (s *State) ScaleToFill(img Size) bool {
	if img.IsEmpty() || s.View.IsEmpty() {
		return false
	}
	s.Zoom = ClampZoom(FillScale(img, s.View) / FitScale(img, s.View))
	s.Offset = Offset{}
	return true
}

// Scale is the total image-to-view scale for the current zoom.
func (s State) Scale(img Size) float64 {
	return FitScale(img, s.View) * s.Zoom
}

// Overflow is how far the scaled image extends past each edge of the view.
func (s State) Overflow(img Size) Offset {
	if img.IsEmpty() || s.View.IsEmpty() {
		return Offset{}
	}
	scale := s.Scale(img)
	return Offset{
		X: math.Max(0, (img.Width*scale-s.View.Width)/2),
		Y: math.Max(0, (img.Height*scale-s.View.Height)/2),
	}
}

// CanPan reports whether a pan in dir would reveal more of a zoomed image.
func (s State) CanPan(img Size, dir Direction) bool {
	if !s.IsZoomed() {
		return false
	}
	limit := s.Overflow(img)
	switch dir {
	case Left:
		return s.Offset.X < limit.X-panMargin
	case Right:
		return s.Offset.X > -limit.X+panMargin
	case Up:
		return s.Offset.Y < limit.Y-panMargin
	case Down:
		return s.Offset.Y > -limit.Y+panMargin
	}
	return false
}

// Pan moves the image one step to reveal the side named by dir and clamps
// the offset to the overflow. It reports false when no pan was possible.
func (s *State) Pan(img Size, dir Direction) bool {
	if !s.CanPan(img, dir) {
		return false
	}
	step := s.PanStep
	if step <= 0 {
		step = DefaultPanStep
	}
	switch dir {
	case Left:
		s.Offset.X += step
	case Right:
		s.Offset.X -= step
	case Up:
		s.Offset.Y += step
	case Down:
		s.Offset.Y -= step
	}
	s.ClampOffset(img)
	return true
}

// ClampOffset pulls the pan offset back inside the overflow of img. Call it
// whenever the view size changes.
func (s *State) ClampOffset(img Size) {
	limit := s.Overflow(img)
	s.Offset.X = math.Max(-limit.X, math.Min(limit.X, s.Offset.X))
	s.Offset.Y = math.Max(-limit.Y, math.Min(limit.Y, s.Offset.Y))
}

// Placement is where the scaled image sits in the view: its top-left corner and size.
func (s State) Placement(img Size) (x, y, w, h float64) {
	scale := s.Scale(img)
	w = img.Width * scale
	h = img.Height * scale
	x = (s.View.Width-w)/2 + s.Offset.X
	y = (s.View.Height-h)/2 + s.Offset.Y
	return x, y, w, h
}
