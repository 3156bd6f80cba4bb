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

// Package zdeflate implements a streaming DEFLATE encoder (RFC 1951)
// wrapped in the zlib container format (RFC 1950).
//
// The implementation of the supporting pieces lives in sub-packages, the
// same way the teacher this module was grown from splits bitstream,
// entropy coding and transforms out of its root package: adler32 holds
// the trailing checksum, huffman the canonical code builder and the
// code-length RLE, bitstream the LSB-first bit sink, lz77 the match
// tokenizer and tables the static length/distance tables both of those
// share.
package zdeflate

import "github.com/go-zdeflate/zdeflate/lz77"

// Error codes returned by CoreError.Code(), covering the ways a caller
// can misuse the encoder or the ways the CLI layer on top of it can fail.
const (
	ERR_INVALID_PARAM    = 1
	ERR_BUDGET_UNDERFLOW = 2
	ERR_INVALID_STATE    = 3
	ERR_OUTPUT_IS_DIR    = 4
	ERR_OVERWRITE_FILE   = 5
	ERR_CREATE_FILE      = 6
	ERR_OPEN_FILE        = 7
	ERR_READ_FILE        = 8
	ERR_WRITE_FILE       = 9
	ERR_MISSING_PARAM    = 10
	ERR_UNKNOWN          = 127
)

// FlushMode selects how Encoder.RequestFlush closes out the bytes
// ingested so far, matching zlib's Z_NO_FLUSH/Z_SYNC_FLUSH/
// Z_PARTIAL_FLUSH/Z_FULL_FLUSH semantics.
type FlushMode int

const (
	// NoFlush buffers input until a block naturally fills (a Stored
	// block reaching its capacity) or Last is set.
	NoFlush FlushMode = iota
	// SyncFlush closes the current block and appends the four-byte
	// 00 00 FF FF stored-block sentinel, guaranteeing every previously
	// ingested byte is recoverable by a decoder without waiting for
	// more input.
	SyncFlush
	// PartialFlush routes identically to SyncFlush at the wire level
	// (the source this encoder is modeled on does the same); the
	// standard zlib distinction between "partial" and "sync" flush
	// (whether the block-align padding bits are guaranteed zero) isn't
	// observable through this encoder's bit sink, so there's nothing to
	// differentiate.
	PartialFlush
	// FullFlush routes like SyncFlush and additionally resets the LZ77
	// match history, so no block after the flush point may reference
	// bytes ingested before it.
	FullFlush
)

// Tokenizer is the capability the encoder needs from an LZ77 match
// finder: ingest bytes, report whether anything is buffered, drain the
// buffered tokens together with the frequency histograms a dynamic
// Huffman block needs, and reset the match history on a full flush.
type Tokenizer interface {
	Ingest(data []byte)
	IsEmpty() bool
	WindowBits() int
	ResetDictionary()
	Finish() ([]lz77.Token, [286]int, [30]int)
	History() []byte
}
