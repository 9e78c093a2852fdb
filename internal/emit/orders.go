package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
	"github.com/retrotrk/nitrocc/internal/song"
)

var channelName = [4]string{"ch1", "ch2", "ch3", "ch4"}

// writeOrderLists emits the four per-channel order lists, each a `dw` array
// of labels pointing at the family-specific copy of the pattern referenced
// by that order-matrix column (§6 "four per-channel order lists").
func writeOrderLists(w io.Writer, plan *optimise.Plan) {
	fmt.Fprintln(w, "; --- Order lists ---")
	for ch := 0; ch < 4; ch++ {
		kind := song.FamilyOf(ch)
		fmt.Fprintf(w, "%s:\n", orderListLabel(channelName[ch]))
		for _, row := range plan.Song.OrderMatrix {
			id := optimise.Main(kind, int(row[ch]))
			fmt.Fprintf(w, "\tdw %s\n", patternLabel(id))
		}
	}
	fmt.Fprintln(w)
}
