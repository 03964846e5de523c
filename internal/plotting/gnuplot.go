package plotting

import (
	"bufio"
	"fmt"
	"io"
)

// WriteGnuplotScript emits a gnuplot script rendering datFile to
// outFile the way the historic pipeline did (pm3d map, square canvas,
// d_e/d_i labels, diverging palette with symmetric cbrange). Users who
// keep gnuplot in their toolchain run the script as-is.
func WriteGnuplotScript(w io.Writer, datFile, outFile string, o Options) error {
	zmin, zmax := o.zRange()

	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "set output %q\n\n", outFile)
	fmt.Fprintln(out, "set terminal pngcairo size 4096,4096 font \"Arial, 64\" enha lw 10")
	fmt.Fprintln(out, "set grid")
	fmt.Fprintln(out, "set size square")
	fmt.Fprintln(out, "set xtics 0.4, 0.2")
	fmt.Fprintln(out, "set ytics 0.4, 0.2")
	fmt.Fprintln(out, "set label 'd_e' at graph 0.05, 0.90 left front font 'Arial, 104'")
	fmt.Fprintln(out, "set label 'd_i' at graph 0.90, 0.05 left front font 'Arial, 104'")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "set pm3d map")
	fmt.Fprintln(out, "unset key")
	if o.Difference {
		switch {
		case o.Alternate:
			fmt.Fprintln(out, "set palette defined (-1 '#5548c1', 0 'white', 1 '#b10127')")
		case o.Soft:
			fmt.Fprintln(out, "set palette defined (-1 'blue', 0 'gray85', 1 'red')")
		default:
			fmt.Fprintln(out, "set palette defined (-1 'blue', 0 'white', 1 'red')")
		}
	} else {
		fmt.Fprintln(out, "set palette defined (0 'white', 1 'blue', 2 'cyan', 3 'yellow', 4 'red')")
	}
	fmt.Fprintf(out, "set cbrange [%g:%g]\n", zmin, zmax)
	fmt.Fprintf(out, "sp %q u 1:2:3 w p pt 5 ps 0.05 lc palette z\n", datFile)
	return out.Flush()
}
