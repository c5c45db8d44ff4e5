package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aspiers/midi-rubato/internal/file"
)

var (
	i           = flag.String("i", "", "options file name (YAML)")
	addChecksum = flag.Bool("add_checksum", false, "automatically add the input checksum to the options YAML")
	o           = flag.String("o", "", "output file name (default: taken from the options file)")
)

func Main() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %v", err)
	}
	fsys := os.DirFS(cwd)

	options, err := file.ReadOptions(fsys, *i)
	if err != nil {
		return fmt.Errorf("failed to read options: %v", err)
	}

	wantChecksum := *addChecksum && options.InputFileSHA256 == ""

	mid, err := file.Process(fsys, options)
	if err != nil {
		return fmt.Errorf("failed to process: %v", err)
	}

	name := options.OutputFile
	if *o != "" {
		name = *o
	}
	err = mid.WriteFile(name)
	if err != nil {
		return fmt.Errorf("failed to write %v: %v", name, err)
	}

	if wantChecksum && options.InputFileSHA256 != "" {
		err := file.WriteOptions(*i, options)
		if err != nil {
			return fmt.Errorf("failed to write %v: %v", *i, err)
		}
	}

	return nil
}

func main() {
	flag.Parse()
	err := Main()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
