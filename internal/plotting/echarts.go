package plotting

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxOverviewBins caps the per-axis resolution of an HTML overview
// heatmap; denser maps are downsampled by stride to keep the page
// responsive in a browser.
const maxOverviewBins = 150

// OverviewHTML renders an interactive heatmap page over the given maps,
// the quick-look counterpart to the original low-resolution screening
// plots. Each map becomes one chart on the page.
func OverviewHTML(w io.Writer, maps []*Map, o Options) error {
	if len(maps) == 0 {
		return fmt.Errorf("no maps to render")
	}

	page := components.NewPage()
	page.PageTitle = "fingerprint map overview"

	for _, m := range maps {
		page.AddCharts(overviewChart(m, o))
	}
	return page.Render(w)
}

func overviewChart(m *Map, o Options) *charts.HeatMap {
	stride := 1
	for len(m.DI)/stride > maxOverviewBins || len(m.DE)/stride > maxOverviewBins {
		stride++
	}

	var xLabels, yLabels []string
	for c := 0; c < len(m.DI); c += stride {
		xLabels = append(xLabels, fmt.Sprintf("%.2f", m.X(c)))
	}
	for r := 0; r < len(m.DE); r += stride {
		yLabels = append(yLabels, fmt.Sprintf("%.2f", m.Y(r)))
	}

	var data []opts.HeatMapData
	for ci, c := 0, 0; c < len(m.DI); ci, c = ci+1, c+stride {
		for ri, r := 0, 0; r < len(m.DE); ri, r = ri+1, r+stride {
			z := m.Z(c, r)
			if z == 0 {
				continue // empty bins stay blank, like the .dat previews
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{ci, ri, z}})
		}
	}

	zmin, zmax := o.zRange()
	colors := []string{"#0000ff", "#ffffff", "#ff0000"}
	if !o.Difference {
		colors = []string{"#ffffff", "#0000ff", "#00ffff", "#ffff00", "#ff0000"}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "760px", Height: "760px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    stem(m.Name),
			Subtitle: fmt.Sprintf("bins=%dx%d stride=%d", len(m.DI), len(m.DE), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "d_i"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "d_e", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(zmin),
			Max:        float32(zmax),
			InRange:    &opts.VisualMapInRange{Color: colors},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("surface share", data)
	return hm
}
