package plotting

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Options configure one rendered heatmap.
type Options struct {
	// Title is drawn above the map; defaults to the map's file stem.
	Title string

	// ZMax bounds the color range. Difference maps use a symmetric
	// -ZMax..+ZMax band, fingerprints 0..ZMax. Zero selects the default
	// for the map kind.
	ZMax float64

	// Difference marks the map as a difference map (diverging palette,
	// symmetric color range).
	Difference bool

	// Alternate selects the bent cool-warm palette for difference maps.
	Alternate bool

	// Soft swaps the white midpoint of the three-level palette for
	// light gray, for screening plots on non-white backgrounds.
	// Alternate wins when both are set.
	Soft bool

	// Size is the square edge length; zero means 20 cm.
	Size vg.Length
}

func (o Options) palette() palette.Palette {
	if !o.Difference {
		return Rainbow()
	}
	if o.Alternate {
		return BentCoolWarm()
	}
	if o.Soft {
		return ThreeLevelSoft()
	}
	return ThreeLevel()
}

func (o Options) zRange() (min, max float64) {
	zmax := o.ZMax
	if zmax == 0 {
		if o.Difference {
			zmax = ZMaxDifference
		} else {
			zmax = ZMaxFingerprint
		}
	}
	if o.Difference {
		return -zmax, zmax
	}
	return 0, zmax
}

// RenderFile draws the map as a square heatmap with d_i on the x axis
// and d_e on the y axis, and saves it to path. The output format
// follows the file extension (.png or .pdf).
func RenderFile(m *Map, path string, o Options) error {
	p := plot.New()

	title := o.Title
	if title == "" {
		title = stem(m.Name)
	}
	p.Title.Text = title
	p.X.Label.Text = "d_i"
	p.Y.Label.Text = "d_e"

	h := plotter.NewHeatMap(m, o.palette())
	h.Min, h.Max = o.zRange()
	p.Add(h)

	size := o.Size
	if size == 0 {
		size = 20 * vg.Centimeter
	}
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
