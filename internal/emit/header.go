package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
)

// lastNote and patternLength back the compile-time asserts §6 calls for;
// they are invariants of the data model (internal/song), not of any one
// song, so the assembler checks them once against the emitted constants
// rather than the optimizer re-deriving them per run.
const (
	lastNote      = 72 // count of pitched notes, distinct from song.NoNote
	patternLength = 64 // song.PatternRows
)

// writeHeaderRecord emits the fixed-size header record: tempo, the highest
// order-matrix index, pointers to the three instrument banks, the routine
// bank pointer, the wave bank pointer, and the main catalog's high byte
// (§6 "a header record").
func writeHeaderRecord(w io.Writer, plan *optimise.Plan) {
	s := plan.Song
	fmt.Fprintln(w, "; --- Header ---")
	fmt.Fprintf(w, "\tdb %d ; ticks per row\n", s.TicksPerRow)
	fmt.Fprintf(w, "\tdb %d ; highest order-matrix index\n", len(s.OrderMatrix)-1)
	fmt.Fprintf(w, "\tdw %s\n", instrumentBankLabel("duty"))
	fmt.Fprintf(w, "\tdw %s\n", instrumentBankLabel("wave"))
	fmt.Fprintf(w, "\tdw %s\n", instrumentBankLabel("noise"))
	fmt.Fprintf(w, "\tdw %s\n", routineTableLabel())
	fmt.Fprintf(w, "\tdw %s\n", waveBankLabel())
	fmt.Fprintf(w, "\tdb HIGH(%s)\n", catalogLabel("main", 0))
	fmt.Fprintln(w)
}

func writeAsserts(w io.Writer) {
	fmt.Fprintln(w, "; --- Compile-time invariants ---")
	fmt.Fprintf(w, "\tassert LAST_NOTE == %d\n", lastNote)
	fmt.Fprintf(w, "\tassert PATTERN_LENGTH == %d\n", patternLength)
	fmt.Fprintln(w)
}
