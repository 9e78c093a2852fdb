package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
	"github.com/retrotrk/nitrocc/internal/song"
)

// version is embedded in the emitted source so the assembled song data
// carries its own provenance marker, redefined fresh on every run.
const version = "1.0.0"

// Write renders a finished Plan as assembly source, in the fixed order
// §6 specifies: header comment, version redefinition, optional include,
// optional section, header record, order lists, row pools, catalogs,
// asserts, instrument banks, wave bank, routine table.
func Write(w io.Writer, plan *optimise.Plan, opts Options) error {
	fmt.Fprintf(w, "; Generated by nitrocc for %q, do not edit by hand.\n", opts.DescriptorLabel)
	fmt.Fprintf(w, "REDEF NITROCC_VERSION EQUS \"%s\"\n\n", version)

	if opts.IncludePath != "" {
		fmt.Fprintf(w, "INCLUDE \"%s\"\n\n", opts.IncludePath)
	}
	if opts.SectionType != "" {
		name := opts.SectionName
		if name == "" {
			name = "Song Data"
		}
		fmt.Fprintf(w, "SECTION %q, %s\n\n", name, opts.SectionType)
	}

	label := opts.DescriptorLabel
	if label == "" {
		label = "Song"
	}
	fmt.Fprintf(w, "export %s\n%s:\n", label, label)

	writeHeaderRecord(w, plan)
	writeOrderLists(w, plan)
	writeRowPool(w, "main", plan.MainPool)
	writeRowPool(w, "subpattern", plan.SubPool)
	writeMainCatalog(w, plan.MainPool.Catalog)
	writeSubCatalog(w, plan.SubPool.Catalog)
	writeAsserts(w)

	for i := range plan.InstrumentMappings {
		kind := song.Kind(i)
		bank := plan.Song.Instruments.Bank(kind)
		writeInstrumentBank(w, kind, bank, plan.InstrumentMappings[i], plan.WaveMapping)
	}
	writeWaveBank(w, &plan.Song.Waves, plan.WaveMapping)
	writeRoutineTable(w, &plan.Song.Routines)

	return nil
}
