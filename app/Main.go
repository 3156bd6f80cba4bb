/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command zdeflate compresses one or more files with the streaming
// zlib/DEFLATE encoder in the root package.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("zdeflate", flag.ContinueOnError)

	configPath := fs.String("config", "", "path to a YAML config file; flags below override its values")
	output := fs.String("output", "", "output path, only honored for a single input file")
	mode := fs.String("mode", "", "block mode: stored, fixed or dynamic")
	windowBits := fs.Int("window", 0, "window size in bits, 8..15")
	jobs := fs.Int("jobs", 0, "number of files to compress concurrently")
	recursive := fs.Bool("recursive", false, "descend into input directories")
	overwrite := fs.Bool("force", false, "overwrite existing output files")
	verbosity := fs.Uint("verbose", 0, "0=quiet, 1=per-file summary, 2=per-block detail")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zdeflate:", err)
		return 1
	}

	if fs.NArg() > 0 {
		cfg.Inputs = fs.Args()
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *windowBits != 0 {
		cfg.WindowBits = *windowBits
	}
	if *jobs != 0 {
		cfg.Jobs = *jobs
	}
	if *recursive {
		cfg.Recursive = true
	}
	if *overwrite {
		cfg.Overwrite = true
	}
	if isFlagSet(fs, "verbose") {
		cfg.Verbosity = *verbosity
	}

	if len(cfg.Inputs) == 0 {
		fmt.Fprintln(os.Stderr, "zdeflate: no input files given")
		return 2
	}

	if err := CompressAll(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "zdeflate:", err)
		return 1
	}

	return 0
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
