package main

import (
	"testing"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/plotting"
)

func TestPartners(t *testing.T) {
	tests := []struct {
		path       string
		ref, probe string
	}{
		{"diff_alpha_beta.dat", "alpha", "beta"},
		{"cxs_workshop/diff_alpha_beta.dat", "alpha", "beta"},
		{"diff_pyridine_quinoline.dat", "pyridine", "quinoline"},
	}
	for _, tt := range tests {
		ref, probe := partners(tt.path)
		if ref != tt.ref || probe != tt.probe {
			t.Errorf("partners(%q) = %q, %q; want %q, %q",
				tt.path, ref, probe, tt.ref, tt.probe)
		}
	}
}

func TestPlotOptionsDefaults(t *testing.T) {
	o := plotOptions(config{}, "alpha", false)
	if o.ZMax != plotting.ZMaxFingerprint {
		t.Errorf("fingerprint ZMax = %v, want %v", o.ZMax, plotting.ZMaxFingerprint)
	}

	o = plotOptions(config{}, "diff_a_b", true)
	if o.ZMax != plotting.ZMaxDifference {
		t.Errorf("difference ZMax = %v, want %v", o.ZMax, plotting.ZMaxDifference)
	}

	o = plotOptions(config{zmax: 0.1}, "alpha", true)
	if o.ZMax != 0.1 {
		t.Errorf("explicit ZMax = %v, want 0.1", o.ZMax)
	}
}
