// Package filter holds the image operations the viewer offers: automatic
// enhancement, noise reduction and quarter-turn rotation.
package filter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// DefaultNoiseLevel and DefaultSharpness are the smoothing the viewer applies.
	DefaultNoiseLevel = 0.02
	DefaultSharpness  = 0.4

	// levelsClip is the share of pixels per channel ignored at each end of
	// the histogram when stretching levels.
	levelsClip = 0.005
	// darkLuminance is the mean luminance under which midtones are lifted.
	darkLuminance = 0.4
	darkGamma     = 1.2
	saturation    = 15
)

// ErrEmptyImage is returned for a nil image or one without pixels.
var ErrEmptyImage = errors.New("empty image")

func checkImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	return nil
}

// AutoEnhance stretches each colour channel to the full range, lifts the
// midtones of dark images and boosts saturation.
func AutoEnhance(img image.Image) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, fmt.Errorf("auto enhance: %w", err)
	}
	src := imaging.Clone(img)
	lo, hi := channelLimits(src, levelsClip)
	out := imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretch(c.R, lo[0], hi[0]),
			G: stretch(c.G, lo[1], hi[1]),
			B: stretch(c.B, lo[2], hi[2]),
			A: c.A,
		}
	})
	if meanLuminance(out) < darkLuminance {
		out = imaging.AdjustGamma(out, darkGamma)
	}
	return imaging.AdjustSaturation(out, saturation), nil
}

// channelLimits finds, per RGB channel, the values below and above which
// the given share of pixels fall.
func channelLimits(img *image.NRGBA, clip float64) (lo, hi [3]uint8) {
	var hist [3][256]int
	pixels := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		hist[0][img.Pix[i]]++
		hist[1][img.Pix[i+1]]++
		hist[2][img.Pix[i+2]]++
		pixels++
	}
	cut := int(float64(pixels) * clip)
	for ch := 0; ch < 3; ch++ {
		lo[ch], hi[ch] = 0, 255
		sum := 0
		for v := 0; v < 256; v++ {
			sum += hist[ch][v]
			if sum > cut {
				lo[ch] = uint8(v)
				break
			}
		}
		sum = 0
		for v := 255; v >= 0; v-- {
			sum += hist[ch][v]
			if sum > cut {
				hi[ch] = uint8(v)
				break
			}
		}
	}
	return lo, hi
}

func stretch(v, lo, hi uint8) uint8 {
	if hi <= lo {
		return v
	}
	if v <= lo {
		return 0
	}
	if v >= hi {
		return 255
	}
	return uint8(math.Round(float64(v-lo) * 255 / float64(hi-lo)))
}

func meanLuminance(img *image.NRGBA) float64 {
	var sum float64
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		sum += 0.299*float64(img.Pix[i]) + 0.587*float64(img.Pix[i+1]) + 0.114*float64(img.Pix[i+2])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) / 255
}

// NoiseReduction blurs away noise of roughly the given level and restores
// edges with an unsharp mask of the given sharpness.
func NoiseReduction(img image.Image, noiseLevel, sharpness float64) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, fmt.Errorf("noise reduction: %w", err)
	}
	if noiseLevel < 0 || sharpness < 0 {
		return nil, fmt.Errorf("noise reduction: negative parameter (noise %.3f, sharpness %.3f)", noiseLevel, sharpness)
	}
	out := imaging.Clone(img)
	if sigma := noiseLevel * 50; sigma > 0 {
		out = imaging.Blur(out, sigma)
	}
	if sharpness > 0 {
		out = imaging.Sharpen(out, sharpness*2)
	}
	return out, nil
}

// NormalizeRotation maps any angle onto 0, 90, 180 or 270, rounding down
// to a quarter turn.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}

// Rotate turns img clockwise by deg, which must be a multiple of 90.
func Rotate(img image.Image, deg int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	if deg%90 != 0 {
		return nil, fmt.Errorf("rotate: %d is not a multiple of 90 degrees", deg)
	}
	// imaging rotates counter-clockwise.
	switch NormalizeRotation(deg) {
	case 90:
		return imaging.Rotate270(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate90(img), nil
	}
	return img, nil
}
