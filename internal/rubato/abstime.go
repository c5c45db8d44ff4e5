package rubato

import (
	"gitlab.com/gomidi/midi/v2/smf"
)

// toAbsoluteTime rewrites every event's Delta field as its absolute
// tick position, accumulating each track independently. Inverse of
// toDeltaTime; applying the same transform twice corrupts the file.
func toAbsoluteTime(mid *smf.SMF) {
	for _, t := range mid.Tracks {
		var time uint32
		for i := range t {
			time += t[i].Delta
			t[i].Delta = time
		}
	}
}

// toDeltaTime restores the delta encoding required for serialization,
// across all tracks.
func toDeltaTime(mid *smf.SMF) {
	for _, t := range mid.Tracks {
		var prev uint32
		for i := range t {
			delta := t[i].Delta - prev
			prev = t[i].Delta
			t[i].Delta = delta
		}
	}
}
