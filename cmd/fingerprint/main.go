// Package main provides fingerprint, which condenses CrystalExplorer
// surface files (.cxs) into normalized 2D fingerprint maps (.dat).
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/cxs"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fingerprint"
)

func main() {
	var (
		algoFlag  = flag.String("algo", "kahan", "triangle area algorithm: kahan, heron, or rr")
		rangeFlag = flag.String("range", "extended", "map range: standard, translated, or extended")
	)
	flag.Parse()

	algo, err := fingerprint.ParseAlgorithm(*algoFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	rng, err := fingerprint.ParseMapRange(*rangeFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths, err = filepath.Glob("*.cxs")
		if err != nil {
			log.Fatalf("glob *.cxs: %v", err)
		}
	}
	if len(paths) == 0 {
		log.Fatal("no .cxs files to process")
	}

	for _, path := range paths {
		if err := process(path, algo, rng); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
}

func process(path string, algo fingerprint.Algorithm, rng fingerprint.MapRange) error {
	surface, err := cxs.ParseFile(path)
	if err != nil {
		return err
	}

	grid, err := fingerprint.New(surface, algo, rng)
	if err != nil {
		return err
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".dat"
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := grid.WriteDat(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("%s: %d vertices, %d triangles -> %s (%s range, %s areas)",
		path, len(surface.Vertices), len(surface.Triangles), out, rng.Name, algo)
	return nil
}
