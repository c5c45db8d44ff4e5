// Package file is the options-file front end: a small YAML document
// names the input MIDI, the beat map and the output, so a render
// pipeline can re-run the conversion without repeating paths on the
// command line.
package file

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Options describes one conversion.
type Options struct {
	InputFile   string `yaml:"input_file"`
	BeatmapFile string `yaml:"beatmap_file"`
	OutputFile  string `yaml:"output_file"`

	// InputFileSHA256, if set, is verified against the input MIDI
	// before processing. Catches a silently regenerated input when
	// the same performance is re-rendered.
	InputFileSHA256 string `yaml:"input_file_sha256,omitempty"`
}

func ReadOptions(fsys fs.FS, optionsFile string) (*Options, error) {
	f, err := fsys.Open(optionsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %v", optionsFile, err)
	}
	defer f.Close()
	var options Options
	err = yaml.NewDecoder(f).Decode(&options)
	if err != nil {
		return nil, fmt.Errorf("could not decode %v: %v", optionsFile, err)
	}
	return &options, nil
}

func WriteOptions(optionsFile string, options *Options) (err error) {
	f, err := os.Create(optionsFile)
	if err != nil {
		return fmt.Errorf("could not recreate %v: %v", optionsFile, err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2) // Match yq.
	return enc.Encode(options)
}
