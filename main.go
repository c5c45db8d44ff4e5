package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aspiers/midi-rubato/internal/rubato"
	"github.com/aspiers/midi-rubato/internal/version"
)

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "midi-rubato %s\n", version.Version())
	fmt.Fprintf(w, "usage: %s SRC-MIDI BEATMAP DST-MIDI\n", os.Args[0])
	fmt.Fprintf(w, "retimes SRC-MIDI to the beats in BEATMAP and writes the result to DST-MIDI\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		// Misuse is an error; pipelines calling this tool must be
		// able to tell it apart from a successful conversion.
		os.Exit(2)
	}
	err := rubato.Process(flag.Arg(0), flag.Arg(1), flag.Arg(2))
	if err != nil {
		log.Printf("Failed to retime: %v", err)
		os.Exit(1)
	}
}
