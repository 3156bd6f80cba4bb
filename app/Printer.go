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
	"sync"

	zdeflate "github.com/go-zdeflate/zdeflate"
)

// Printer serializes writes to stdout across the goroutines CompressAll
// fans out, the same role the teacher's own Printer plays for its
// concurrent block compressor.
type Printer struct {
	mu sync.Mutex
}

func (this *Printer) Println(msg string, printFlag bool) {
	if !printFlag {
		return
	}

	this.mu.Lock()
	defer this.mu.Unlock()
	fmt.Println(msg)
}

// InfoPrinter is a zdeflate.Listener that renders block/stream events as
// one line each, gated by a verbosity level: 1 prints stream start/end,
// 2 additionally prints every block boundary and flush.
type InfoPrinter struct {
	verbosity uint
	name      string
	printer   *Printer
}

func NewInfoPrinter(verbosity uint, name string, printer *Printer) *InfoPrinter {
	return &InfoPrinter{verbosity: verbosity, name: name, printer: printer}
}

func (this *InfoPrinter) ProcessEvent(evt *zdeflate.Event) {
	switch evt.Type() {
	case zdeflate.EVT_COMPRESSION_START:
		this.printer.Println(fmt.Sprintf("%s: compression started", this.name), this.verbosity >= 1)

	case zdeflate.EVT_COMPRESSION_END:
		this.printer.Println(fmt.Sprintf("%s: compression ended, %d bytes written", this.name, evt.Size()),
			this.verbosity >= 1)

	case zdeflate.EVT_BLOCK_START:
		this.printer.Println(fmt.Sprintf("%s: block %d started (mode=%d)", this.name, evt.BlockNum(), evt.Mode()),
			this.verbosity >= 2)

	case zdeflate.EVT_BLOCK_END:
		this.printer.Println(fmt.Sprintf("%s: block %d done, %d input bytes", this.name, evt.BlockNum(), evt.Size()),
			this.verbosity >= 2)

	case zdeflate.EVT_FLUSH:
		this.printer.Println(fmt.Sprintf("%s: flush sentinel emitted", this.name), this.verbosity >= 2)
	}
}
