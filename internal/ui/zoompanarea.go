package ui

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"slidey/internal/slideshow"
	"slidey/internal/viewport"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/nfnt/resize"
)

// ZoomPanArea draws the viewer's display image at the viewer's zoom and pan.
type ZoomPanArea struct {
	widget.BaseWidget

	viewer *slideshow.Viewer
	raster *canvas.Raster
	cache  renderCache

	// HideCursor reports whether the pointer should be hidden over the image.
	HideCursor func() bool
	// OnScroll is called with +1 to zoom in and -1 to zoom out.
	OnScroll func(step int)
}

// renderCache remembers the last frame so that repaints without a state
// change skip the resample.
type renderCache struct {
	src   image.Image
	state viewport.State
	w, h  int
	frame image.Image
}

// NewZoomPanArea creates the image widget for viewer.
func NewZoomPanArea(viewer *slideshow.Viewer) *ZoomPanArea {
	zpa := &ZoomPanArea{viewer: viewer}
	zpa.raster = canvas.NewRaster(zpa.draw)
	zpa.ExtendBaseWidget(zpa)
	return zpa
}

// Resize keeps the viewer's view size in step with the widget.
func (zpa *ZoomPanArea) Resize(size fyne.Size) {
	zpa.BaseWidget.Resize(size)
	zpa.viewer.SetViewSize(float64(size.Width), float64(size.Height))
	zpa.Refresh()
}

func (zpa *ZoomPanArea) draw(w, h int) image.Image {
	src := zpa.viewer.DisplayImage()
	state := zpa.viewer.Viewport()
	c := &zpa.cache
	if c.frame != nil && c.src == src && c.state == state && c.w == w && c.h == h {
		return c.frame
	}
	frame := renderView(src, state, w, h)
	*c = renderCache{src: src, state: state, w: w, h: h, frame: frame}
	return frame
}

// renderView paints img into a w by h black frame as placed by state. The
// frame may have more pixels than state.View has units on high density
// displays. Only the visible part of the image is resampled.
func renderView(img image.Image, state viewport.State, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	if img == nil || w <= 0 || h <= 0 || state.View.IsEmpty() {
		return dst
	}
	bounds := img.Bounds()
	size := viewport.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	if size.IsEmpty() {
		return dst
	}

	px := float64(w) / state.View.Width
	x, y, iw, ih := state.Placement(size)
	placed := image.Rect(
		int(math.Round(x*px)), int(math.Round(y*px)),
		int(math.Round((x+iw)*px)), int(math.Round((y+ih)*px)),
	)
	visible := placed.Intersect(dst.Bounds())
	if visible.Empty() || placed.Dx() == 0 || placed.Dy() == 0 {
		return dst
	}

	sx := float64(bounds.Dx()) / float64(placed.Dx())
	sy := float64(bounds.Dy()) / float64(placed.Dy())
	crop := image.Rect(
		bounds.Min.X+int(math.Floor(float64(visible.Min.X-placed.Min.X)*sx)),
		bounds.Min.Y+int(math.Floor(float64(visible.Min.Y-placed.Min.Y)*sy)),
		bounds.Min.X+int(math.Ceil(float64(visible.Max.X-placed.Min.X)*sx)),
		bounds.Min.Y+int(math.Ceil(float64(visible.Max.Y-placed.Min.Y)*sy)),
	).Intersect(bounds)
	if crop.Empty() {
		return dst
	}

	scaled := resize.Resize(uint(visible.Dx()), uint(visible.Dy()), subImage(img, crop), resize.Bilinear)
	draw.Draw(dst, visible, scaled, scaled.Bounds().Min, draw.Src)
	return dst
}

// subImage crops without copying when the image type allows it.
func subImage(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// CreateRenderer is a Fyne lifecycle method.
func (zpa *ZoomPanArea) CreateRenderer() fyne.WidgetRenderer {
	return &zoomPanAreaRenderer{zpa: zpa}
}

// Scrolled zooms with the mouse wheel.
func (zpa *ZoomPanArea) Scrolled(ev *fyne.ScrollEvent) {
	if zpa.OnScroll == nil {
		return
	}
	switch {
	case ev.Scrolled.DY > 0:
		zpa.OnScroll(1)
	case ev.Scrolled.DY < 0:
		zpa.OnScroll(-1)
	}
}

// Cursor hides the pointer while HideCursor says so.
func (zpa *ZoomPanArea) Cursor() desktop.Cursor {
	if zpa.HideCursor != nil && zpa.HideCursor() {
		return desktop.HiddenCursor
	}
	return desktop.DefaultCursor
}

type zoomPanAreaRenderer struct{ zpa *ZoomPanArea }

func (r *zoomPanAreaRenderer) Layout(size fyne.Size)        { r.zpa.raster.Resize(size) }
func (r *zoomPanAreaRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *zoomPanAreaRenderer) Refresh()                     { canvas.Refresh(r.zpa.raster) }
func (r *zoomPanAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.zpa.raster} }
func (r *zoomPanAreaRenderer) Destroy()                     {}

var _ fyne.Widget = (*ZoomPanArea)(nil)
var _ fyne.Scrollable = (*ZoomPanArea)(nil)
var _ desktop.Cursorable = (*ZoomPanArea)(nil)
