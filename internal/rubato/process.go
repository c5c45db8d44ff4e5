// Package rubato retimes a MIDI file to a beat map of externally
// measured beat timestamps, so that playback follows a musician's
// actual, non-metronomic timing.
package rubato

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/aspiers/midi-rubato/internal/beatmap"
)

// Retime replaces all tempo information in mid's control track with
// the given tempo changes.
func Retime(mid *smf.SMF, changes []beatmap.Change) error {
	toAbsoluteTime(mid)
	err := spliceTempo(mid, changes)
	if err != nil {
		return err
	}
	toDeltaTime(mid)
	return nil
}

// Resolution returns the file's metric resolution in ticks per quarter
// note, or an error for the (rare) SMPTE-timed files this tool does
// not handle.
func Resolution(mid *smf.SMF) (smf.MetricTicks, error) {
	res, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, fmt.Errorf("unsupported time format %v, need metric ticks", mid.TimeFormat)
	}
	return res, nil
}

// Process reads the MIDI file src and the beat map, retimes, and
// writes the result to dst. dst is only written once the whole
// transform has succeeded.
func Process(src, beatmapFile, dst string) error {
	mid, err := smf.ReadFile(src)
	if err != nil {
		return fmt.Errorf("smf.ReadFile(%q): %w", src, err)
	}
	res, err := Resolution(mid)
	if err != nil {
		return fmt.Errorf("%v: %w", src, err)
	}
	f, err := os.Open(beatmapFile)
	if err != nil {
		return fmt.Errorf("could not open %v: %w", beatmapFile, err)
	}
	defer f.Close()
	changes, err := beatmap.Read(f, res)
	if err != nil {
		return fmt.Errorf("could not parse %v: %w", beatmapFile, err)
	}
	err = Retime(mid, changes)
	if err != nil {
		return fmt.Errorf("could not retime %v: %w", src, err)
	}
	err = mid.WriteFile(dst)
	if err != nil {
		return fmt.Errorf("could not write %v: %v", dst, err)
	}
	return nil
}
