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
	"fmt"
	"time"
)

const (
	EVT_COMPRESSION_START = 0 // First Eval call, before the zlib header is written
	EVT_BLOCK_START       = 1 // A new DEFLATE block is opened
	EVT_BLOCK_END         = 2 // A DEFLATE block's final bits have been written
	EVT_FLUSH             = 3 // A sync/partial/full flush sentinel was emitted
	EVT_COMPRESSION_END   = 4 // The stream's trailer has been written
)

// Event reports a single step of the encoder's progress: the block mode
// chosen and one byte count (see Size). Listener implementations use this for logging,
// progress bars or the CLI's verbose/info output; the encoder itself never
// depends on whether a listener is attached.
type Event struct {
	eventType int
	blockNum  int
	blockMode BlockMode
	size      int64
	eventTime time.Time
	msg       string
}

// NewEventFromString creates an Event that just wraps a free-form message,
// used for events (like EVT_COMPRESSION_START) that carry no block data.
func NewEventFromString(evtType, blockNum int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, blockNum: blockNum, msg: msg, eventTime: evtTime}
}

// NewEvent creates an Event describing one block's encoding.
func NewEvent(evtType, blockNum int, mode BlockMode, size int64, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, blockNum: blockNum, blockMode: mode, size: size, eventTime: evtTime}
}

// Type returns the event type (one of the EVT_* constants).
func (this *Event) Type() int {
	return this.eventType
}

// BlockNum returns the 0-based index of the block this event concerns, or
// -1 for events (stream start/end) that aren't scoped to a single block.
func (this *Event) BlockNum() int {
	return this.blockNum
}

// Time returns when the event was recorded.
func (this *Event) Time() time.Time {
	return this.eventTime
}

// Size returns the byte count the event carries: input bytes consumed for
// EVT_BLOCK_START/EVT_BLOCK_END, total compressed size for EVT_COMPRESSION_END.
func (this *Event) Size() int64 {
	return this.size
}

// Mode returns the block's Huffman mode, valid for EVT_BLOCK_START/EVT_BLOCK_END.
func (this *Event) Mode() BlockMode {
	return this.blockMode
}

// String returns a one-line JSON-ish rendering of the event, matching the
// compact diagnostic format produced elsewhere in this codebase.
func (this *Event) String() string {
	if len(this.msg) > 0 {
		return this.msg
	}

	t := ""

	switch this.eventType {
	case EVT_COMPRESSION_START:
		t = "COMPRESSION_START"
	case EVT_BLOCK_START:
		t = "BLOCK_START"
	case EVT_BLOCK_END:
		t = "BLOCK_END"
	case EVT_FLUSH:
		t = "FLUSH"
	case EVT_COMPRESSION_END:
		t = "COMPRESSION_END"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"block\":%d, \"mode\":%d, \"size\":%d, \"time\":%d }",
		t, this.blockNum, this.blockMode, this.size, this.eventTime.UnixNano()/1000000)
}

// Listener is implemented by anything that wants to observe an Encoder's
// progress: a verbose CLI printer, a metrics sink, a test harness.
type Listener interface {
	ProcessEvent(evt *Event)
}
