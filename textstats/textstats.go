// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package textstats computes alphabet and run statistics over a byte
// stream in a single forward pass, and provides ForwardRLE, the run
// iterator that both this package and package rlbwt build on.
package textstats

import (
	"hash/crc32"
	"io"

	"github.com/dsnet/golib/hashutil"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "textstats: " + string(e) }

var (
	// ErrIO is returned when the underlying stream reader fails.
	ErrIO error = Error("stream read failed")

	// ErrBadInput is returned when the input violates a documented
	// precondition (missing/duplicate end-marker, empty input).
	ErrBadInput error = Error("malformed input")
)

// CharacterRun is one maximal run of a repeated byte, as produced by
// ForwardRLE.
type CharacterRun struct {
	Character byte
	Length    uint64
}

// ForwardRLE merges adjacent equal bytes of an underlying byte slice into
// (character, length) runs as it is walked, one run per Next call.
//
// Grounded on stool's forward_rle.hpp (referenced, not retrieved, by
// text_statistics.hpp): a one-pass run-merging iterator consumed by both
// TextStatistics and RLBWT construction instead of each hand-rolling its
// own merge loop.
type ForwardRLE struct {
	data []byte
	pos  int
}

// NewForwardRLE creates a run iterator over data. data is not copied;
// callers must not mutate it while iterating.
func NewForwardRLE(data []byte) *ForwardRLE {
	return &ForwardRLE{data: data}
}

// Size returns the number of bytes in the underlying sequence.
func (f *ForwardRLE) Size() uint64 { return uint64(len(f.data)) }

// Next returns the next run, or ok=false once the sequence is exhausted.
func (f *ForwardRLE) Next() (run CharacterRun, ok bool) {
	if f.pos >= len(f.data) {
		return CharacterRun{}, false
	}

	c := f.data[f.pos]
	start := f.pos
	f.pos++

	for f.pos < len(f.data) && f.data[f.pos] == c {
		f.pos++
	}

	return CharacterRun{Character: c, Length: uint64(f.pos - start)}, true
}

// Statistics holds the statistical profile of a text built by Build,
// supplementing spec.md's minimum (run count, alphabet size, per-character
// counts) with the smallest-character and per-character min/max position
// queries from stool's text_statistics.hpp.
type Statistics struct {
	RunCount     uint64
	StrSize      uint64
	AlphabetSize uint64
	CharCounter  [256]uint64
	CharMinPos   [256]int64
	CharMaxPos   [256]int64
	Checksum     uint32
}

// Build computes the statistics of data in one forward pass via
// ForwardRLE.
func Build(data []byte) Statistics {
	var ts Statistics

	for c := range ts.CharMinPos {
		ts.CharMinPos[c] = -1
		ts.CharMaxPos[c] = -1
	}

	frle := NewForwardRLE(data)
	ts.StrSize = frle.Size()

	var x uint64

	for {
		run, ok := frle.Next()
		if !ok {
			break
		}

		ts.CharCounter[run.Character] += run.Length
		ts.RunCount++

		if ts.CharMinPos[run.Character] == -1 {
			ts.CharMinPos[run.Character] = int64(x)
		}

		ts.CharMaxPos[run.Character] = int64(x + run.Length - 1)
		x += run.Length
	}

	for c := range ts.CharCounter {
		if ts.CharCounter[c] > 0 {
			ts.AlphabetSize++
		}
	}

	ts.Checksum = crc32.ChecksumIEEE(data)
	return ts
}

// GetSmallestCharacter returns the smallest byte value occurring in the
// text, or -1 if the text is empty.
func (ts *Statistics) GetSmallestCharacter() int {
	for c := 0; c < 256; c++ {
		if ts.CharCounter[c] > 0 {
			return c
		}
	}

	return -1
}

// GetAlphabet returns the distinct bytes occurring in the text, sorted in
// increasing order.
func (ts *Statistics) GetAlphabet() []byte {
	var out []byte

	for c := 0; c < 256; c++ {
		if ts.CharCounter[c] > 0 {
			out = append(out, byte(c))
		}
	}

	return out
}

// CombineChecksum folds the checksum of a subsequent chunk of length n
// into running, letting StreamReader produce a whole-input checksum
// without buffering the entire input. Grounded on bzip2/common.go's
// combineCRC, which uses the same dsnet/golib/hashutil helper to combine
// per-block CRC-32 values.
func CombineChecksum(running uint32, chunkCRC uint32, n int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, running, chunkCRC, n)
}

// StreamReader loads a byte sequence from an io.Reader in bounded-size
// chunks, computing a running checksum as it goes, grounded on
// bzip2.Reader's buffered chunk-at-a-time consumption style.
type StreamReader struct {
	r        io.Reader
	chunk    []byte
	Checksum uint32
	NBytes   int64
}

// NewStreamReader creates a StreamReader reading from r in chunks of
// chunkSize bytes.
func NewStreamReader(r io.Reader, chunkSize int) *StreamReader {
	if chunkSize <= 0 {
		chunkSize = 1 << 16
	}

	return &StreamReader{r: r, chunk: make([]byte, chunkSize)}
}

// ReadAll reads the entire stream into memory, accumulating a running
// CRC-32 checksum via CombineCRC32 one chunk at a time.
func (sr *StreamReader) ReadAll() ([]byte, error) {
	var out []byte

	for {
		n, err := sr.r.Read(sr.chunk)

		if n > 0 {
			crc := crc32.ChecksumIEEE(sr.chunk[:n])
			sr.Checksum = CombineChecksum(sr.Checksum, crc, int64(n))
			sr.NBytes += int64(n)
			out = append(out, sr.chunk[:n]...)
		}

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return nil, ErrIO
		}

		if n == 0 {
			return nil, ErrIO
		}
	}
}

// ValidateBWT checks the "Raw BWT file" contract: the end-marker (0x00)
// must appear exactly once.
func ValidateBWT(bwt []byte) error {
	if len(bwt) == 0 {
		return ErrBadInput
	}

	count := 0

	for _, b := range bwt {
		if b == 0 {
			count++
		}
	}

	if count != 1 {
		return ErrBadInput
	}

	return nil
}

// ValidateText checks the "Raw text file" contract: no non-terminal
// 0-bytes. A trailing 0-byte end-marker, if present, is permitted.
func ValidateText(text []byte) error {
	if len(text) == 0 {
		return ErrBadInput
	}

	for i, b := range text {
		if b == 0 && i != len(text)-1 {
			return ErrBadInput
		}
	}

	return nil
}
