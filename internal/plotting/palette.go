package plotting

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// The palettes below port the gnuplot palette definitions the original
// tooling shipped: the classic three-level blue/white/red, its softer
// screening variant, Kenneth Moreland's bent cool-warm diverging
// palette, and the CrystalExplorer-style rainbow for fingerprints.

type anchor struct {
	pos     float64
	r, g, b float64
}

// gradient interpolates linearly between anchors and implements
// palette.Palette with a fixed number of steps.
type gradient struct {
	anchors []anchor
	steps   int
}

func (g gradient) Colors() []color.Color {
	colors := make([]color.Color, g.steps)
	for i := range colors {
		t := float64(i) / float64(g.steps-1)
		colors[i] = g.at(t)
	}
	return colors
}

func (g gradient) at(t float64) color.Color {
	a := g.anchors
	if t <= a[0].pos {
		return rgb(a[0].r, a[0].g, a[0].b)
	}
	for i := 1; i < len(a); i++ {
		if t > a[i].pos {
			continue
		}
		span := a[i].pos - a[i-1].pos
		f := (t - a[i-1].pos) / span
		return rgb(
			a[i-1].r+f*(a[i].r-a[i-1].r),
			a[i-1].g+f*(a[i].g-a[i-1].g),
			a[i-1].b+f*(a[i].b-a[i-1].b),
		)
	}
	last := a[len(a)-1]
	return rgb(last.r, last.g, last.b)
}

func rgb(r, g, b float64) color.Color {
	return color.NRGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

const paletteSteps = 255

// ThreeLevel is the classic diverging blue/white/red palette for
// difference maps.
func ThreeLevel() palette.Palette {
	return gradient{
		anchors: []anchor{
			{0.0, 0.0, 0.0, 1.0},
			{0.5, 1.0, 1.0, 1.0},
			{1.0, 1.0, 0.0, 0.0},
		},
		steps: paletteSteps,
	}
}

// ThreeLevelSoft swaps the white midpoint for light gray, so near-zero
// tiles stay visible against a paper-white background.
func ThreeLevelSoft() palette.Palette {
	return gradient{
		anchors: []anchor{
			{0.0, 0.0, 0.0, 1.0},
			{0.5, 0.83, 0.83, 0.83},
			{1.0, 1.0, 0.0, 0.0},
		},
		steps: paletteSteps,
	}
}

// BentCoolWarm is Moreland's bent cool-warm diverging palette,
// anchored on the endpoints and near-white center of the 64-step
// reference table.
func BentCoolWarm() palette.Palette {
	return gradient{
		anchors: []anchor{
			{0.0, 0.33479, 0.28308, 0.75650},
			{0.49206, 0.93604, 0.94009, 0.94803},
			{0.52381, 0.93983, 0.91432, 0.89762},
			{1.0, 0.69463, 0.00296, 0.15458},
		},
		steps: paletteSteps,
	}
}

// Rainbow is the CrystalExplorer fingerprint palette: white for empty
// bins, then blue through red for increasing surface share.
func Rainbow() palette.Palette {
	return gradient{
		anchors: []anchor{
			{0.0, 1.0, 1.0, 1.0},
			{0.00001, 0.0, 0.0, 1.0},
			{1.0 / 6, 0.0, 0.5, 1.0},
			{2.0 / 6, 0.0, 1.0, 1.0},
			{3.0 / 6, 0.5, 1.0, 0.5},
			{4.0 / 6, 1.0, 1.0, 0.0},
			{5.0 / 6, 1.0, 0.5, 0.0},
			{1.0, 1.0, 0.0, 0.0},
		},
		steps: paletteSteps,
	}
}
