// Command nitrocc compiles a tracker-music project file into an assembly
// source file of packed song data for a companion playback routine.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/retrotrk/nitrocc/internal/emit"
	"github.com/retrotrk/nitrocc/internal/optimise"
	"github.com/retrotrk/nitrocc/internal/song"
)

var (
	flagOutput       = flag.String("o", "", "output path (default stdout)")
	flagInclude      = flag.String("include", "fortISSimO.inc", "include-file path (empty disables)")
	flagSectionType  = flag.String("section", "", "section type, e.g. ROMX (empty disables SECTION directive)")
	flagSectionName  = flag.String("section-name", "Song Data", "section name")
	flagLabel        = flag.String("label", "", "song descriptor label (default input file stem)")
	flagAssertVblank = flag.Bool("assert-vblank", false, "fail unless the song is driven by vblank")
	flagAssertTimer  = flag.String("assert-timer", "", "fail unless the song is driven by the timer at this divider")
	flagQuiet        = flag.Bool("quiet", false, "suppress optimization statistics")
	flagColor        = flag.String("color", "auto", "color output: always, auto, never")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("nitrocc: ")
	flag.Parse()

	switch *flagColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
	default:
		log.Fatalf("invalid -color value %q (want always, auto, or never)", *flagColor)
	}

	if flag.NArg() != 1 {
		log.Fatal("usage: nitrocc [flags] <song-file>")
	}
	inputPath := flag.Arg(0)

	if *flagAssertVblank && *flagAssertTimer != "" {
		log.Fatal("-assert-vblank and -assert-timer are mutually exclusive")
	}

	opts := emit.Options{
		IncludePath:     *flagInclude,
		SectionType:     *flagSectionType,
		SectionName:     *flagSectionName,
		DescriptorLabel: *flagLabel,
		AssertVblank:    *flagAssertVblank,
	}
	if opts.DescriptorLabel == "" {
		base := filepath.Base(inputPath)
		opts.DescriptorLabel = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if *flagAssertTimer != "" {
		divider, err := strconv.ParseUint(*flagAssertTimer, 10, 8)
		if err != nil {
			log.Fatalf("invalid -assert-timer divider %q: %s", *flagAssertTimer, err)
		}
		opts.AssertTimer = true
		opts.AssertTimerDivider = uint8(divider)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal(err)
	}

	s, err := song.Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	if err := emit.CheckPlaybackMethod(opts, s.UseTimer, s.TimerDivider); err != nil {
		log.Fatal(err)
	}

	plan, err := optimise.Run(s)
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if *flagOutput != "" {
		f, err := os.Create(*flagOutput)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	if err := emit.Write(out, plan, opts); err != nil {
		log.Fatal(err)
	}

	if !*flagQuiet {
		emit.WriteStats(os.Stderr, plan)
	}
}
