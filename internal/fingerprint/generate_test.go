package fingerprint

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/cxs"
)

// twoTriangleSurface builds a minimal surface: two unit right triangles
// whose mean (d_i, d_e) land in two distinct bins.
func twoTriangleSurface() *cxs.Surface {
	return &cxs.Surface{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 1, Y: 1, Z: 0},
		},
		Triangles: [][3]int{{0, 1, 2}, {1, 3, 2}},
		DI:        []float64{1.00, 1.00, 1.00, 2.00},
		DE:        []float64{1.20, 1.20, 1.20, 2.40},
	}
}

func TestNewNormalizesToPercent(t *testing.T) {
	g, err := New(twoTriangleSurface(), Kahan, Extended)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, g.TotalArea, 1e-12, "two half-unit triangles")
	assert.Zero(t, g.Degenerate)
	assert.Zero(t, g.OutOfRange)

	// Triangle 1: mean d_i 1.00, d_e 1.20 -> bins (60, 80). Each triangle
	// holds half the surface.
	assert.InDelta(t, 50.0, g.At(60, 80), 1e-9)

	// Triangle 2: mean d_i (1+1+2)/3, d_e (1.2+1.2+2.4)/3 -> 1.33, 1.60.
	assert.InDelta(t, 50.0, g.At(93, 120), 1e-9)

	// Everything sums back to 100 percent.
	sum := 0.0
	for i := 0; i < g.Bins(); i++ {
		for j := 0; j < g.Bins(); j++ {
			sum += g.At(i, j)
		}
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestNewOutOfRangeStillNormalizes(t *testing.T) {
	s := twoTriangleSurface()
	// Push the second triangle's mean (d_i, d_e) beyond the standard
	// window upper bound of 2.60.
	s.DI[3] = 7.0
	s.DE[3] = 7.0

	g, err := New(s, Kahan, Standard)
	require.NoError(t, err)

	assert.Equal(t, 1, g.OutOfRange)
	// The in-range triangle carries 50% of the total area; the out-of-range
	// one still contributes to the denominator.
	assert.InDelta(t, 50.0, g.At(60, 80), 1e-9)
}

func TestNewRejectsEmptySurface(t *testing.T) {
	_, err := New(&cxs.Surface{}, Kahan, Extended)
	require.Error(t, err)
}

func TestMapRangeBins(t *testing.T) {
	assert.Equal(t, 221, Standard.Bins())
	assert.Equal(t, 221, Translated.Bins())
	assert.Equal(t, 261, Extended.Bins())
}

func TestParseMapRange(t *testing.T) {
	for in, want := range map[string]MapRange{
		"standard": Standard, "s": Standard,
		"translated": Translated, "t": Translated,
		"extended": Extended, "e": Extended,
	} {
		got, err := ParseMapRange(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMapRange("narrow")
	require.Error(t, err)
}

func TestWriteDatLayout(t *testing.T) {
	g, err := New(twoTriangleSurface(), Kahan, Extended)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteDat(&buf))

	bins := g.Bins()
	scanner := bufio.NewScanner(&buf)

	lines := 0
	blanks := 0
	var first, last string
	for scanner.Scan() {
		lines++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			blanks++
			continue
		}
		if first == "" {
			first = text
		}
		last = text
	}
	require.NoError(t, scanner.Err())

	// bins*bins data lines plus one separator per d_i row.
	assert.Equal(t, bins*bins+bins, lines)
	assert.Equal(t, bins, blanks)
	assert.Equal(t, "0.40 0.40 0.00000000", first)
	assert.Equal(t, "3.00 3.00 0.00000000", last)
}

func TestWriteDatRoundTripsThroughGrid(t *testing.T) {
	g, err := New(twoTriangleSurface(), Heron, Extended)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteDat(&buf))

	// The emitted non-zero bins match the grid, at .dat precision.
	scanner := bufio.NewScanner(&buf)
	nonZero := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 || fields[2] == "0.00000000" {
			continue
		}
		nonZero++
	}
	assert.Equal(t, 2, nonZero)

	total := 0.0
	for i := 0; i < g.Bins(); i++ {
		for j := 0; j < g.Bins(); j++ {
			total += g.At(i, j)
		}
	}
	assert.False(t, math.IsNaN(total))
}
