// Package main provides sum-abs-diffs, which reduces difference maps to
// a single difference number each: the sum of the absolute z-values.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/diffnum"
)

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = diffnum.Discover(".")
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	if len(paths) == 0 {
		log.Fatal("no difference maps (diff*.dat) to process")
	}

	for _, path := range paths {
		sum, err := diffnum.SumFile(path)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("%s:  %6.4f\n", path, sum)
	}
}
