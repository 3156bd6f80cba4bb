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

package zdeflate

import (
	"github.com/go-zdeflate/zdeflate/internal"
	"golang.org/x/sync/errgroup"
)

// Job describes one independent stream to compress: the window size and
// block mode to drive an Encoder with, and the refill/flush callbacks
// Encoder.Compress expects.
type Job struct {
	WindowBits int
	Mode       BlockMode
	Refill     func(buf []byte) (n int, last bool)
	Flush      func(buf []byte) int
	Listener   Listener
}

// CompressAll runs one Encoder per Job concurrently, up to maxConcurrency
// at a time (0 or negative means unbounded), matching §5's note that
// multiple encoders may run in parallel with no coordination between
// them — each Job's Encoder, input buffer and output buffer are entirely
// private to its own goroutine. It returns one error per job, indexed the
// same as the input slice; a nil entry means that job completed cleanly.
func CompressAll(jobs []Job, maxConcurrency int) []error {
	errs := make([]error, len(jobs))

	var g errgroup.Group
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, job := range jobs {
		i, job := i, job

		g.Go(func() error {
			inBuf := make([]byte, 64*1024)
			outBuf := make([]byte, 64*1024)

			in := internal.NewInputView(inBuf)
			out := internal.NewOutputView(outBuf)
			out.Flush(len(outBuf))

			e := New(job.WindowBits, job.Mode, in, out)
			if job.Listener != nil {
				e.AddListener(job.Listener)
			}

			errs[i] = e.Compress(job.Refill, job.Flush)
			return nil
		})
	}

	g.Wait()
	return errs
}
