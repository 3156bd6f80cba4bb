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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	zdeflate "github.com/go-zdeflate/zdeflate"
	"github.com/go-zdeflate/zdeflate/internal"
)

func parseMode(s string) (zdeflate.BlockMode, error) {
	switch s {
	case "stored":
		return zdeflate.Stored, nil
	case "fixed":
		return zdeflate.FixedHuffman, nil
	case "dynamic", "":
		return zdeflate.DynamicHuffman, nil
	default:
		return 0, errors.Newf("unknown block mode %q (want stored, fixed or dynamic)", s)
	}
}

// fileJob pairs a discovered input file with the output path it compresses
// to and the open handles/counters its zdeflate.Job callbacks close over,
// mirroring the teacher's own file-to-file result bookkeeping.
type fileJob struct {
	input  string
	output string

	src     *os.File
	dst     *os.File
	read    int64
	written int64
	ioErr   error
}

func planJobs(cfg Config) ([]*fileJob, error) {
	files, err := internal.ExpandGlobs(cfg.Inputs, cfg.Recursive, cfg.IgnoreLinks, cfg.IgnoreDot)
	if err != nil {
		return nil, errors.Wrap(err, "expanding input paths")
	}

	sort.Sort(internal.NewFileCompare(files, true))

	jobs := make([]*fileJob, 0, len(files))
	for _, fd := range files {
		out := fd.FullPath + ".zz"
		if cfg.Output != "" && len(files) == 1 {
			out = cfg.Output
		}
		jobs = append(jobs, &fileJob{input: fd.FullPath, output: out})
	}

	return jobs, nil
}

func (this *fileJob) open(overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(this.output); err == nil {
			return errors.Newf("refusing to overwrite existing file %q", this.output)
		}
	}

	if err := os.MkdirAll(filepath.Dir(this.output), 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory for %s", this.output)
	}

	src, err := os.Open(this.input)
	if err != nil {
		return errors.Wrapf(err, "opening %s", this.input)
	}

	dst, err := os.Create(this.output)
	if err != nil {
		src.Close()
		return errors.Wrapf(err, "creating %s", this.output)
	}

	this.src, this.dst = src, dst
	return nil
}

// refill/flush are the zdeflate.Job callbacks for this file; io errors are
// latched into ioErr (and surfaced as the "last" chunk) rather than
// panicking, since Encoder.Compress has no other channel to report them on.
func (this *fileJob) refill(buf []byte) (int, bool) {
	n, err := io.ReadFull(this.src, buf)
	this.read += int64(n)

	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return n, true
	}
	if err != nil {
		this.ioErr = errors.Wrapf(err, "reading %s", this.input)
		return n, true
	}
	return n, false
}

func (this *fileJob) flush(buf []byte) int {
	n, err := this.dst.Write(buf)
	this.written += int64(n)

	if err != nil {
		this.ioErr = errors.Wrapf(err, "writing compressed output for %s", this.output)
	}
	return n
}

func (this *fileJob) close() {
	this.src.Close()
	this.dst.Close()
}

// CompressAll discovers every file cfg.Inputs names (expanding globs and
// directories), then hands one zdeflate.Job per file to the root package's
// own zdeflate.CompressAll so the actual concurrency — one Encoder per
// file, up to cfg.Jobs at a time — lives in the library, not duplicated
// here. A file that cannot be opened makes it return that error before
// any compression starts. Otherwise it returns the first compression
// error encountered; every job still runs to completion since each file
// is independent of the others.
func CompressAll(cfg Config) error {
	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}

	planned, err := planJobs(cfg)
	if err != nil {
		return err
	}

	printer := &Printer{}
	jobs := make([]zdeflate.Job, 0, len(planned))
	live := make([]*fileJob, 0, len(planned))

	for _, fj := range planned {
		if err := fj.open(cfg.Overwrite); err != nil {
			return err
		}

		live = append(live, fj)
		jobs = append(jobs, zdeflate.Job{
			WindowBits: cfg.WindowBits,
			Mode:       mode,
			Refill:     fj.refill,
			Flush:      fj.flush,
			Listener:   NewInfoPrinter(cfg.Verbosity, fj.input, printer),
		})
	}

	errs := zdeflate.CompressAll(jobs, cfg.Jobs)

	var first error
	for i, fj := range live {
		fj.close()

		err := errs[i]
		if err == nil {
			err = fj.ioErr
		}

		if err != nil {
			os.Remove(fj.output)
			if first == nil {
				first = errors.Wrapf(err, "compressing %s", fj.input)
			}
			continue
		}

		printer.Println(fj.input+": "+formatRatio(fj.read, fj.written), cfg.Verbosity >= 1)
	}

	return first
}

func formatRatio(read, written int64) string {
	if read == 0 {
		return "0 bytes -> 0 bytes"
	}

	ratio := float64(written) / float64(read)
	return fmt.Sprintf("%d bytes -> %d bytes (ratio %.3f)", read, written, ratio)
}
