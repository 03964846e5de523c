// Package main provides diff-finger, a point-wise comparison of two
// Hirshfeld surface fingerprint map files. Both files must describe the
// same (d_i, d_e) grid; the output carries the z-difference per point.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/gridmap"
)

func main() {
	flag.Parse()
	os.Exit(run(flag.Args(), os.Stdout))
}

// run performs the diff and reports the process exit status. Anything
// other than exactly two file arguments prints the usage line and fails
// before either file is touched.
func run(args []string, stdout io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(stdout, "usage: %s file1 file2\n", filepath.Base(os.Args[0]))
		return 1
	}

	if err := gridmap.DiffFiles(args[0], args[1], stdout); err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}
