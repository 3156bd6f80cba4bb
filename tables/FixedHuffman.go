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

package tables

import "github.com/go-zdeflate/zdeflate/huffman"

// FixedLitLenCodes and FixedDistCodes are the canonical codes for the
// fixed-Huffman code-length vectors, pre-reversed for LSB-first emission.
// Running the same canonical construction used for dynamic blocks over
// RFC 1951's fixed length vectors reproduces the standard fixed table
// (literal/length 0-143 -> 8 bits 48-191, 144-255 -> 9 bits 400-511,
// 256-279 -> 7 bits 0-23, 280-287 -> 8 bits 192-199; distances -> 5 bits
// equal to the symbol index) without hand-transcribing it.
var FixedLitLenCodes = huffman.CanonicalCodes(FixedLitLenLengths)
var FixedDistCodes = huffman.CanonicalCodes(FixedDistLengths)
