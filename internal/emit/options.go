package emit

import "fmt"

// Options configures the textual emission (§6 "CLI surface").
type Options struct {
	IncludePath     string // empty disables the INCLUDE directive
	SectionType     string // empty disables the SECTION directive
	SectionName     string
	DescriptorLabel string

	AssertVblank       bool
	AssertTimer        bool
	AssertTimerDivider uint8
}

// PlaybackMismatchError reports that the song's own timing does not match
// the caller's playback-method assertion (§7 "Playback-method mismatch").
type PlaybackMismatchError struct {
	Want string
	Got  string
}

func (e *PlaybackMismatchError) Error() string {
	return fmt.Sprintf("playback method mismatch: song requires %s but %s was asserted", e.Got, e.Want)
}

// CheckPlaybackMethod validates an exclusive vblank/timer assertion against
// the song's own UseTimer/TimerDivider fields.
func CheckPlaybackMethod(opts Options, useTimer bool, timerDivider uint8) error {
	switch {
	case opts.AssertVblank && useTimer:
		return &PlaybackMismatchError{Want: "vblank", Got: "timer"}
	case opts.AssertTimer && !useTimer:
		return &PlaybackMismatchError{Want: "timer", Got: "vblank"}
	case opts.AssertTimer && useTimer && opts.AssertTimerDivider != timerDivider:
		return &PlaybackMismatchError{
			Want: fmt.Sprintf("timer divider %d", opts.AssertTimerDivider),
			Got:  fmt.Sprintf("timer divider %d", timerDivider),
		}
	}
	return nil
}
