package file

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io/fs"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/aspiers/midi-rubato/internal/beatmap"
	"github.com/aspiers/midi-rubato/internal/rubato"
)

// Process retimes the MIDI file named by options and returns the
// result for the caller to write. If options carries no input
// checksum, the computed one is filled in so the caller may persist
// it.
func Process(fsys fs.FS, options *Options) (*smf.SMF, error) {
	inBytes, err := fs.ReadFile(fsys, options.InputFile)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %v", options.InputFile, err)
	}

	sum := fmt.Sprintf("%x", sha256.Sum256(inBytes))

	if options.InputFileSHA256 != "" && options.InputFileSHA256 != sum {
		return nil, fmt.Errorf("mismatching checksum of %v: got %v, want %v", options.InputFile, sum, options.InputFileSHA256)
	}

	mid, err := smf.ReadFrom(bytes.NewReader(inBytes))
	if err != nil {
		return nil, fmt.Errorf("could not parse %v: %v", options.InputFile, err)
	}

	res, err := rubato.Resolution(mid)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", options.InputFile, err)
	}

	changes, err := beatmap.ReadFile(fsys, options.BeatmapFile, res)
	if err != nil {
		return nil, err
	}

	err = rubato.Retime(mid, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to retime: %w", err)
	}

	if options.InputFileSHA256 == "" {
		options.InputFileSHA256 = sum
	}

	return mid, nil
}
