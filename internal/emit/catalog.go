package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
	"github.com/retrotrk/nitrocc/internal/song"
)

// writeCatalogPlanes emits a cell catalog as three parallel, 256-aligned
// byte arrays — one per encoded-cell byte position — each padded with
// zero bytes out to 256 entries (§4.8 "Alignment", §6 "three 256-byte
// aligned arrays").
func writeCatalogPlanes(w io.Writer, group string, cells [][3]byte) {
	for plane := 0; plane < 3; plane++ {
		fmt.Fprintf(w, "\talign 8\n%s:\n\tdb ", catalogLabel(group, plane))
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "$%02x", c[plane])
		}
		if len(cells) > 0 {
			fmt.Fprintln(w)
		}
		if pad := 256 - len(cells); pad > 0 {
			fmt.Fprintf(w, "\tds %d\n", pad)
		}
	}
	fmt.Fprintln(w)
}

func writeMainCatalog(w io.Writer, cat *optimise.Catalog[song.Cell]) {
	fmt.Fprintln(w, "; --- Main cell catalog ---")
	cells := make([][3]byte, len(cat.Order))
	for i, c := range cat.Order {
		cells[i] = optimise.EncodeMainCell(c)
	}
	writeCatalogPlanes(w, "main", cells)
}

func writeSubCatalog(w io.Writer, cat *optimise.Catalog[song.SubCell]) {
	fmt.Fprintln(w, "; --- Subpattern cell catalog ---")
	cells := make([][3]byte, len(cat.Order))
	for i, c := range cat.Order {
		cells[i] = optimise.EncodeSubCell(c)
	}
	writeCatalogPlanes(w, "sub", cells)
}
