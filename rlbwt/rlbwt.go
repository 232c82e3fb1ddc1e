// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rlbwt implements a run-length view of a BWT byte stream (the
// RLBWT index, component F) and the LF-mapping engine built on top of it
// (component G), consuming a wavelet.WaveletTree built once over the full
// BWT.
package rlbwt

import (
	"runtime"

	"github.com/TNishimoto/stool-go/flc"
	"github.com/TNishimoto/stool-go/textstats"
	"github.com/TNishimoto/stool-go/wavelet"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "rlbwt: " + string(e) }

var (
	// ErrOutOfRange is returned when a position argument exceeds the
	// indexed BWT's length.
	ErrOutOfRange error = Error("index out of range")

	// ErrInconsistent is returned when an internal invariant is violated,
	// e.g. the wavelet tree reports an impossible rank, or the BWT lacks
	// (or duplicates) its end-marker.
	ErrInconsistent error = Error("internal invariant violated")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// Run is one maximal block of a repeated head character in the BWT.
type Run struct {
	Char   byte
	Length uint64
	LPos   uint64 // cumulative length of earlier runs
	FPos   uint64 // position of this run's character block in the F column
}

// Index is the RLBWT index: an ordered sequence of runs, the C-array, and
// a borrowed handle to the wavelet tree built over the full BWT.
type Index struct {
	runs    []Run
	lengths *flc.Vector // run lengths, auto-widening packed storage mirroring runs[k].Length
	n       uint64
	c       [256]uint64 // C[ch] = count of BWT symbols strictly less than ch
	wt      *wavelet.ByteWaveletTree
}

// NewIndexFromBWT streams bwt through a textstats.ForwardRLE iterator,
// accumulating run lengths into an auto-widening flc.Vector, a C-array,
// and the run sequence, then computes each run's F-position in a second
// pass via wt.Rank. wt must already be built over bwt (data-flow: the
// wavelet tree is built once over BWT(T) and borrowed by the index).
func NewIndexFromBWT(bwt []byte, wt *wavelet.ByteWaveletTree) (idx *Index, err error) {
	defer errRecover(&err)

	if err := textstats.ValidateBWT(bwt); err != nil {
		return nil, ErrInconsistent
	}

	if wt.Size() != uint64(len(bwt)) {
		return nil, ErrInconsistent
	}

	idx = &Index{n: uint64(len(bwt)), wt: wt}

	lengths := flc.New()
	frle := textstats.NewForwardRLE(bwt)

	var counts [256]uint64
	var lpos uint64

	for {
		run, ok := frle.Next()
		if !ok {
			break
		}

		if len(idx.runs) > 0 && idx.runs[len(idx.runs)-1].Char == run.Character {
			panic(ErrInconsistent) // ForwardRLE guarantees this cannot happen
		}

		lengths.PushBack(run.Length)
		counts[run.Character] += run.Length
		idx.runs = append(idx.runs, Run{Char: run.Character, Length: run.Length, LPos: lpos})
		lpos += run.Length
	}

	if lpos != idx.n {
		panic(ErrInconsistent)
	}

	idx.lengths = lengths

	var running uint64
	for ch := 0; ch < 256; ch++ {
		idx.c[ch] = running
		running += counts[ch]
	}

	for k := range idx.runs {
		run := &idx.runs[k]
		run.FPos = idx.c[run.Char] + wt.Rank(run.LPos, run.Char)
	}

	return idx, nil
}

// Len returns the length of the indexed BWT.
func (ix *Index) Len() uint64 { return ix.n }

// Runs returns the RLBWT's run sequence.
func (ix *Index) Runs() []Run { return ix.runs }

// CArray returns the character-count prefix-sum array: C[ch] is the
// number of BWT symbols strictly less than ch.
func (ix *Index) CArray() [256]uint64 { return ix.c }

// RunLengths returns the packed run-length vector backing the index, the
// auto-widening fixed-length-code encoding of the same lengths stored
// per-run in Runs(). Exposed for callers that want the cumulative
// L-position of a run computed via flc.Vector.PSum instead of walking
// Runs() directly (e.g. a binary search over run boundaries).
func (ix *Index) RunLengths() *flc.Vector { return ix.lengths }

// LF computes the LF-mapping of global BWT position i: LF(i) =
// C[BWT[i]] + rank(BWT, i, BWT[i]), grounded directly on
// BWTFunctions::LF in stool's bwt_functions.hpp.
func (ix *Index) LF(i uint64) (uint64, error) {
	if i >= ix.n {
		return 0, ErrOutOfRange
	}

	c := ix.wt.Access(i)
	return ix.c[c] + ix.wt.Rank(i, c), nil
}

// endMarkerPos returns the BWT position of the 0-byte end-marker.
func (ix *Index) endMarkerPos() (uint64, error) {
	for _, run := range ix.runs {
		if run.Char == 0 {
			return run.LPos, nil
		}
	}

	return 0, ErrInconsistent
}

// BackwardISAIterator yields ISA[n-1], ISA[n-2], ..., ISA[0] by repeated
// LF, starting from the BWT position of the end-marker. It is finite,
// non-restartable, and single-shot.
type BackwardISAIterator struct {
	idx       *Index
	pos       uint64
	remaining uint64
	err       error
}

// BackwardISA creates a BackwardISAIterator over the index.
func (ix *Index) BackwardISA() (*BackwardISAIterator, error) {
	p0, err := ix.endMarkerPos()
	if err != nil {
		return nil, err
	}

	return &BackwardISAIterator{idx: ix, pos: p0, remaining: ix.n}, nil
}

// Next returns the next ISA value in the sequence, or ok=false once the
// iterator is exhausted or has encountered an internal inconsistency.
func (it *BackwardISAIterator) Next() (uint64, bool) {
	if it.remaining == 0 || it.err != nil {
		return 0, false
	}

	next, err := it.idx.LF(it.pos)
	if err != nil {
		it.err = err
		return 0, false
	}

	it.pos = next
	it.remaining--
	return it.pos, true
}

// Err returns the error, if any, that caused the iterator to stop early.
func (it *BackwardISAIterator) Err() error { return it.err }
