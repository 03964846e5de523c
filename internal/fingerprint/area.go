// Package fingerprint computes normalized 2D Hirshfeld surface
// fingerprints from CrystalExplorer surfaces: per-triangle surface
// areas binned on a (d_i, d_e) grid and normalized against the total
// surface area.
package fingerprint

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Algorithm selects the triangle area formula.
type Algorithm string

const (
	// Kahan uses W. Kahan's needle-safe formula: sides sorted so that
	// a >= b >= c, area = 0.25*sqrt((a+(b+c))*(c-(a-b))*(c+(a-b))*(a+(b-c))).
	Kahan Algorithm = "kahan"

	// Heron uses the classic semi-perimeter formula.
	Heron Algorithm = "heron"

	// RohlRaiteri reproduces fingerprint.f90: area from the cross of two
	// edge vectors via the enclosed angle, with all sides required to be
	// longer than 1e-4 and sin² theta at least 1e-7.
	RohlRaiteri Algorithm = "rr"
)

// ParseAlgorithm maps a CLI flag value to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case Kahan, Heron, RohlRaiteri:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("unknown area algorithm %q (want kahan, heron or rr)", s)
}

// TriangleArea computes the surface area of the triangle spanned by a,
// b and c. Degenerate triangles report ok=false and are skipped by the
// caller rather than aborting the whole surface.
func TriangleArea(algo Algorithm, a, b, c r3.Vec) (area float64, ok bool) {
	switch algo {
	case Heron:
		return heronArea(a, b, c)
	case RohlRaiteri:
		return rohlRaiteriArea(a, b, c)
	default:
		return kahanArea(a, b, c)
	}
}

func sideLengths(a, b, c r3.Vec) (la, lb, lc float64) {
	la = r3.Norm(r3.Sub(b, c))
	lb = r3.Norm(r3.Sub(a, c))
	lc = r3.Norm(r3.Sub(a, b))
	return la, lb, lc
}

func kahanArea(p, q, r r3.Vec) (float64, bool) {
	la, lb, lc := sideLengths(p, q, r)

	// Relabel so that a >= b >= c.
	s := []float64{la, lb, lc}
	sort.Float64s(s)
	a, b, c := s[2], s[1], s[0]

	// Triangle inequality; equality means a needle with zero area.
	if c-(a-b) < 0 {
		return 0, false
	}

	ka := a + (b + c)
	kb := c - (a - b)
	kc := c + (a - b)
	kd := a + (b - c)
	return 0.25 * math.Sqrt(ka*kb*kc*kd), true
}

func heronArea(p, q, r r3.Vec) (float64, bool) {
	la, lb, lc := sideLengths(p, q, r)
	s := (la + lb + lc) / 2
	under := s * (s - la) * (s - lb) * (s - lc)
	if under <= 0 {
		return 0, false
	}
	return math.Sqrt(under), true
}

func rohlRaiteriArea(p, q, r r3.Vec) (float64, bool) {
	v1 := r3.Sub(q, p)
	v2 := r3.Sub(r, p)
	v3 := r3.Sub(r, q)

	l1 := r3.Norm(v1)
	l2 := r3.Norm(v2)
	l3 := r3.Norm(v3)

	// fingerprint.f90's minimum side length.
	const minSide = 10e-5
	if l1 <= minSide || l2 <= minSide || l3 <= minSide {
		return 0, false
	}

	cost := r3.Dot(v1, v2) / (l1 * l2)
	preSint := 1.0 - cost*cost
	if preSint > 1.0 {
		preSint = 1.0
	}
	if preSint < 1e-7 {
		return 0, false
	}

	return 0.5 * l1 * l2 * math.Sqrt(preSint), true
}
