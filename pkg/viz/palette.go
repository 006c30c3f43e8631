package viz

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// gradient is a palette interpolated linearly between anchor colors.
type gradient []color.Color

func (g gradient) Colors() []color.Color { return g }

var _ palette.Palette = gradient(nil)

// newGradient spreads n colors evenly across the anchors.
func newGradient(n int, anchors ...color.RGBA) gradient {
	out := make(gradient, n)
	segs := len(anchors) - 1
	for i := range n {
		t := float64(i) / float64(n-1) * float64(segs)
		k := int(t)
		if k >= segs {
			k = segs - 1
		}
		f := t - float64(k)
		a, b := anchors[k], anchors[k+1]
		out[i] = color.RGBA{
			R: lerp(a.R, b.R, f),
			G: lerp(a.G, b.G, f),
			B: lerp(a.B, b.B, f),
			A: 255,
		}
	}
	return out
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

var (
	red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	black  = color.RGBA{A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gridGy = color.RGBA{R: 200, G: 200, B: 200, A: 255}

	// red-yellow-green, for values in [-1, 1]
	redYellowGreen = newGradient(101,
		color.RGBA{R: 165, G: 0, B: 38, A: 255},
		color.RGBA{R: 255, G: 255, B: 191, A: 255},
		color.RGBA{R: 0, G: 104, B: 55, A: 255},
	)
	blues = newGradient(64,
		color.RGBA{R: 247, G: 251, B: 255, A: 255},
		color.RGBA{R: 8, G: 48, B: 107, A: 255},
	)
)
