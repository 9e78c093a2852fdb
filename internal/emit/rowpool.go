package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
)

// writeRowPool emits one flattened row-pool: a label line at each pattern
// start, one `db` per cell referencing its catalog id, and an overlap
// amount as a comment only — it is pure annotation, never observed at
// playback (§6 "interleaved Label and overlap comments").
func writeRowPool[T comparable](w io.Writer, heading string, pool *optimise.RowPoolResult[T]) {
	fmt.Fprintf(w, "; --- %s row pool ---\n", heading)
	for _, item := range pool.Items {
		switch item.Kind {
		case optimise.ItemLabel:
			fmt.Fprintf(w, "%s:\n", patternLabel(item.Label))
		case optimise.ItemOverlapMarker:
			fmt.Fprintf(w, "\t; overlap: %d rows shared with preceding pattern\n", item.Overlap)
		case optimise.ItemCell:
			fmt.Fprintf(w, "\tdb %d\n", item.CellID)
		}
	}
	fmt.Fprintln(w)
}
