package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/song"
)

// writeRoutineTable passes the song's routine-name bank through verbatim as
// a table of external pointers: the routines themselves live in
// hand-written code the song project merely names (§6 "an exported label
// for a user-provided routine table").
func writeRoutineTable(w io.Writer, routines *[song.NumRoutines]string) {
	fmt.Fprintf(w, "export %s\n%s:\n", routineTableLabel(), routineTableLabel())
	for _, name := range routines {
		if name == "" {
			fmt.Fprintln(w, "\tdw 0")
			continue
		}
		fmt.Fprintf(w, "\tdw %s\n", name)
	}
	fmt.Fprintln(w)
}
