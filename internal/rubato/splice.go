package rubato

import (
	"errors"
	"fmt"
	"log"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/aspiers/midi-rubato/internal/beatmap"
)

// ErrMalformedTrack indicates a control track that cannot be given a
// valid terminal marker.
var ErrMalformedTrack = errors.New("malformed control track")

// spliceTempo merges the tempo changes into track 0 of mid, replacing
// all pre-existing tempo information. Requires absolute-time tracks
// (see toAbsoluteTime) and changes in non-decreasing tick order; the
// other tracks are only consulted for the final tick of the musical
// content.
func spliceTempo(mid *smf.SMF, changes []beatmap.Change) error {
	if len(mid.Tracks) == 0 {
		return fmt.Errorf("%w: no tracks", ErrMalformedTrack)
	}
	control := mid.Tracks[0]
	// Cut at the end-of-track marker, keeping its tick: the track
	// must not end earlier than it used to. Events after the marker
	// should not exist, but must not survive the splice if they do.
	var endTick uint32
	for i, ev := range control {
		if ev.Message.Is(smf.MetaEndOfTrackMsg) {
			endTick = ev.Delta
			control = control[:i]
			break
		}
	}

	var out smf.Track
	next := 0
	insert := func(c beatmap.Change) {
		log.Printf("inserting tempo %.3f bpm (%.3f qpm) at %d.%d.%d @ %d.", c.BPM, c.QPM, c.Section, c.Measure, c.Beat, c.Tick)
		out = append(out, smf.Event{
			Delta:   uint32(c.Tick),
			Message: smf.MetaTempo(c.QPM),
		})
	}
	for _, ev := range control {
		// A change at the same tick as an existing event goes in
		// front of it.
		for next < len(changes) && changes[next].Tick <= int64(ev.Delta) {
			insert(changes[next])
			next++
		}
		var qpm float64
		if ev.Message.GetMetaTempo(&qpm) {
			log.Printf("dropping original tempo %.3f qpm @ %d.", qpm, ev.Delta)
			continue
		}
		out = append(out, ev)
	}
	// Changes past the end of the control track still apply while
	// notes are playing; past the final note tick nothing is left
	// for them to affect.
	final := finalTick(mid)
	for next < len(changes) && changes[next].Tick <= final {
		insert(changes[next])
		next++
	}
	if next < len(changes) {
		log.Printf("discarding %d tempo changes past the final tick %d.", len(changes)-next, final)
	}

	if len(out) == 0 {
		return fmt.Errorf("%w: no events to terminate", ErrMalformedTrack)
	}
	if last := out[len(out)-1].Delta; last > endTick {
		endTick = last
	}
	out.Close(endTick)
	mid.Tracks[0] = out
	return nil
}

// finalTick returns the largest absolute tick among tracks 1..N, or 0
// if there are none.
func finalTick(mid *smf.SMF) int64 {
	var max int64
	for _, t := range mid.Tracks[1:] {
		if len(t) == 0 {
			continue
		}
		if tick := int64(t[len(t)-1].Delta); tick > max {
			max = tick
		}
	}
	return max
}
