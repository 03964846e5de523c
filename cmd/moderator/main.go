// Package main provides moderator, the umbrella tool of the fingerprint
// toolchain. It stages CrystalExplorer .cxs files into a workshop
// directory, normalizes them into fingerprint maps, computes round-robin
// difference maps and difference numbers, renders plots, and optionally
// records each run in a SQLite ledger.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fingerprint"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/gridmap"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/plotting"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/report"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/workshop"
)

type config struct {
	list      bool
	join      bool
	normalize bool
	compare   bool
	diffnum   bool
	overview  bool
	png       bool
	gnuplot   bool

	algoFlag  string
	rangeFlag string
	zmax      float64
	alternate bool
	soft      bool
	dbPath    string
	note      string
	root      string
}

func parseFlags() config {
	var cfg config
	flag.BoolVar(&cfg.list, "list", false, "list the .cxs files in the project folder")
	flag.BoolVar(&cfg.join, "join", false, "stage the .cxs files into the workshop directory")
	flag.BoolVar(&cfg.normalize, "normalize", false, "fingerprint the staged .cxs files into .dat maps")
	flag.BoolVar(&cfg.compare, "compare", false, "compute round-robin difference maps")
	flag.BoolVar(&cfg.diffnum, "diffnum", false, "report the difference number of each difference map")
	flag.BoolVar(&cfg.overview, "overview", false, "write an HTML overview of the staged maps")
	flag.BoolVar(&cfg.png, "png", false, "render each staged map as a PNG heat map")
	flag.BoolVar(&cfg.gnuplot, "gnuplot", false, "write a gnuplot script per staged map")

	flag.StringVar(&cfg.algoFlag, "algo", "kahan", "triangle area algorithm: kahan, heron, or rr")
	flag.StringVar(&cfg.rangeFlag, "range", "extended", "map range: standard, translated, or extended")
	flag.Float64Var(&cfg.zmax, "zmax", 0, "plot z ceiling; 0 picks the default per map kind")
	flag.BoolVar(&cfg.alternate, "alternate", false, "use the bent cool-warm palette for difference maps")
	flag.BoolVar(&cfg.soft, "soft", false, "use a gray midpoint in difference maps, for non-white backgrounds")
	flag.StringVar(&cfg.dbPath, "db", "", "path of the SQLite run ledger (optional)")
	flag.StringVar(&cfg.note, "note", "", "free-form note stored with the ledger run")
	flag.Parse()

	cfg.root = "."
	if flag.NArg() > 0 {
		cfg.root = flag.Arg(0)
	}
	return cfg
}

func main() {
	cfg := parseFlags()

	if !cfg.list && !cfg.join && !cfg.normalize && !cfg.compare &&
		!cfg.diffnum && !cfg.overview && !cfg.png && !cfg.gnuplot {
		flag.Usage()
		os.Exit(1)
	}

	w := workshop.New(cfg.root)

	var ledger *report.DB
	var runID string
	if cfg.dbPath != "" {
		var err error
		ledger, err = report.Open(cfg.dbPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer ledger.Close()
		runID, err = ledger.BeginRun(cfg.note)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("ledger run %s", runID)
	}

	if cfg.list {
		sources, err := w.ListCXS()
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, src := range sources {
			fmt.Println(filepath.Base(src))
		}
	}

	if cfg.join {
		if err := w.Join(); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.normalize {
		algo, err := fingerprint.ParseAlgorithm(cfg.algoFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		rng, err := fingerprint.ParseMapRange(cfg.rangeFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := w.Normalize(algo, rng); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.compare {
		if _, err := w.CompareAll(); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.diffnum {
		results, err := w.DifferenceNumbers()
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, d := range results {
			fmt.Printf("%s:  %6.4f\n", filepath.Base(d.Map), d.Sum)
			if ledger != nil {
				ref, probe := partners(d.Map)
				lines, err := gridmap.CountLines(d.Map)
				if err != nil {
					log.Fatalf("%v", err)
				}
				if err := ledger.RecordComparison(runID, ref, probe, d.Sum, lines); err != nil {
					log.Fatalf("%v", err)
				}
			}
		}
	}

	if cfg.png {
		if err := renderPNGs(w, cfg); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.gnuplot {
		if err := writeGnuplotScripts(w, cfg); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if cfg.overview {
		if err := writeOverview(w, cfg); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// partners recovers the reference and probe stems from a difference map
// name of the form diff_<reference>_<probe>.dat.
func partners(path string) (reference, probe string) {
	stem := strings.TrimSuffix(filepath.Base(path), ".dat")
	stem = strings.TrimPrefix(stem, "diff_")
	if i := strings.Index(stem, "_"); i > 0 {
		return stem[:i], stem[i+1:]
	}
	return stem, ""
}


// stagedMaps pairs each staged .dat with whether it is a difference map.
func stagedMaps(w *workshop.Workshop) (fingerprints, diffs []string, err error) {
	fingerprints, err = w.FingerprintMaps()
	if err != nil {
		return nil, nil, err
	}
	diffs, err = w.DifferenceMaps()
	if err != nil {
		return nil, nil, err
	}
	if len(fingerprints)+len(diffs) == 0 {
		return nil, nil, fmt.Errorf("no .dat maps in %s (run normalize first)", w.Dir)
	}
	return fingerprints, diffs, nil
}

func plotOptions(cfg config, name string, difference bool) plotting.Options {
	o := plotting.Options{
		Title:      name,
		ZMax:       cfg.zmax,
		Difference: difference,
		Alternate:  cfg.alternate,
		Soft:       cfg.soft,
	}
	if o.ZMax == 0 {
		if difference {
			o.ZMax = plotting.ZMaxDifference
		} else {
			o.ZMax = plotting.ZMaxFingerprint
		}
	}
	return o
}

func renderPNGs(w *workshop.Workshop, cfg config) error {
	fingerprints, diffs, err := stagedMaps(w)
	if err != nil {
		return err
	}

	render := func(path string, difference bool) error {
		m, err := plotting.LoadMapFile(path)
		if err != nil {
			return err
		}
		out := strings.TrimSuffix(path, ".dat") + ".png"
		if err := plotting.RenderFile(m, out, plotOptions(cfg, m.Name, difference)); err != nil {
			return err
		}
		log.Printf("rendered %s", filepath.Base(out))
		return nil
	}

	for _, path := range fingerprints {
		if err := render(path, false); err != nil {
			return err
		}
	}
	for _, path := range diffs {
		if err := render(path, true); err != nil {
			return err
		}
	}
	return nil
}

func writeGnuplotScripts(w *workshop.Workshop, cfg config) error {
	fingerprints, diffs, err := stagedMaps(w)
	if err != nil {
		return err
	}

	write := func(path string, difference bool) error {
		stem := strings.TrimSuffix(path, ".dat")
		f, err := os.Create(stem + ".gp")
		if err != nil {
			return err
		}
		o := plotOptions(cfg, filepath.Base(stem), difference)
		if err := plotting.WriteGnuplotScript(f, path, stem+".png", o); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("wrote %s.gp", filepath.Base(stem))
		return nil
	}

	for _, path := range fingerprints {
		if err := write(path, false); err != nil {
			return err
		}
	}
	for _, path := range diffs {
		if err := write(path, true); err != nil {
			return err
		}
	}
	return nil
}

func writeOverview(w *workshop.Workshop, cfg config) error {
	fingerprints, _, err := stagedMaps(w)
	if err != nil {
		return err
	}
	if len(fingerprints) == 0 {
		return fmt.Errorf("no fingerprint maps in %s (run normalize first)", w.Dir)
	}

	var maps []*plotting.Map
	for _, path := range fingerprints {
		m, err := plotting.LoadMapFile(path)
		if err != nil {
			return err
		}
		maps = append(maps, m)
	}

	out := filepath.Join(w.Dir, "overview.html")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	o := plotOptions(cfg, "overview", false)
	if err := plotting.OverviewHTML(f, maps, o); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", out)
	return nil
}
