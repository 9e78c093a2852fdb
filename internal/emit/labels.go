// Package emit pretty-prints an optimizer Plan as RGBDS-flavored assembly
// source, the collaborator on the output side of the parser in internal/song
// (§1 "Peripheral functionality").
package emit

import (
	"fmt"

	"github.com/retrotrk/nitrocc/internal/optimise"
)

// patternLabel names the row-pool label for one pattern or subpattern. Each
// channel family owns an independent copy even when two families reference
// the same underlying song pattern index, so the label must carry both the
// family and the index.
func patternLabel(id optimise.PatternId) string {
	if id.Sub {
		return fmt.Sprintf("Sub_%s_%d", id.Kind, id.Index)
	}
	return fmt.Sprintf("Pat_%s_%d", id.Kind, id.Index)
}

func orderListLabel(kind string) string { return "Order_" + kind }

func catalogLabel(group string, plane int) string {
	return fmt.Sprintf("Catalog_%s_%d", group, plane)
}

func instrumentBankLabel(kind string) string { return "Instruments_" + kind }

func waveBankLabel() string { return "Waves" }

func routineTableLabel() string { return "Routines" }
