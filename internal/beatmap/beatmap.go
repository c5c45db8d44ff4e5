// Package beatmap reads beat map files: one performed beat per line,
// produced by a tap-timing capture tool, used to retime a MIDI file to
// a rubato performance.
package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Change is one tempo change, anchored to an absolute tick position in
// the control track.
type Change struct {
	// Tick is the absolute tick at which the change takes effect.
	Tick int64
	// BPM is the notated beats per minute, for display only.
	BPM float64
	// QPM is quarter notes per minute, the actual MIDI tempo.
	QPM float64

	// Position of the beat in the score, for logging only.
	Label     string
	Section   int
	Measure   int
	Beat      int
	Timestamp string
}

// ParseError reports a malformed beat map line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("beat map line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses a beat map into tempo changes, in non-decreasing tick
// order. Each line carries label, section, measure, beat, timestamp,
// beat value numerator, beat value denominator and tempo; the final
// line omits the tempo (no tempo is defined beyond the last beat) and
// ends parsing. The beat value expresses the beat duration as a
// multiple of a quarter note, so each line advances the tick counter
// by resolution*num/den ticks regardless of the notated time
// signature.
func Read(r io.Reader, resolution smf.MetricTicks) ([]Change, error) {
	var changes []Change
	var tick int64
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 7 {
			// Terminal beat: marks the end of the performance.
			break
		}
		if len(fields) != 8 {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("got %d fields, want 7 or 8", len(fields))}
		}
		section, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad section %q: %v", fields[1], err)}
		}
		measure, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad measure %q: %v", fields[2], err)}
		}
		beat, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad beat %q: %v", fields[3], err)}
		}
		num, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad beat value numerator %q: %v", fields[5], err)}
		}
		den, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad beat value denominator %q: %v", fields[6], err)}
		}
		if den == 0 {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("zero beat value denominator")}
		}
		tempo, err := strconv.ParseFloat(fields[7], 64)
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("bad tempo %q: %v", fields[7], err)}
		}
		beatValue := num / den
		changes = append(changes, Change{
			Tick:      tick,
			BPM:       tempo,
			QPM:       tempo * beatValue,
			Label:     fields[0],
			Section:   section,
			Measure:   measure,
			Beat:      beat,
			Timestamp: fields[4],
		})
		tick += int64(float64(resolution) * beatValue)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read beat map: %v", err)
	}
	return changes, nil
}

// ReadFile reads a beat map from fsys.
func ReadFile(fsys fs.FS, name string, resolution smf.MetricTicks) ([]Change, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", name, err)
	}
	defer f.Close()
	changes, err := Read(f, resolution)
	if err != nil {
		return nil, fmt.Errorf("could not parse %v: %w", name, err)
	}
	return changes, nil
}
