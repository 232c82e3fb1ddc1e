// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package wavelet defines the interval-symbols contract that the Beller
// enumerator and the RLBWT/LF engine drive, plus ByteWaveletTree, a
// reference implementation of that contract built from 256 per-character
// occurrence bit-vectors. No native recursive wavelet tree (wt_huff-style
// bit matrix) is vendored in this module, so ByteWaveletTree answers
// Rank/Access directly from its occurrence vectors rather than by
// descending a tree; it satisfies the same contract an sdsl-backed
// implementation would at the cost of a 256-vector footprint per byte
// alphabet instead of a log(sigma)-depth structure.
package wavelet

import "github.com/TNishimoto/stool-go/bitvector"

// WaveletTree is the contract the rest of the core drives: rank of a
// character over a prefix, random access, and total size.
type WaveletTree interface {
	// Rank returns the number of occurrences of c in positions [0, i).
	Rank(i uint64, c byte) uint64

	// Access returns the symbol at position i.
	Access(i uint64) byte

	// Size returns the number of symbols.
	Size() uint64
}

// CharInterval is one (character, BWT-range) pair produced by
// IntervalSymbols: the BWT range reached by extending [l, r] backward
// with character C.
type CharInterval struct {
	Left  uint64
	Right uint64
	C     byte
}

// IntervalSymbols enumerates, for the closed BWT range [l, r], every
// distinct character ch occurring within it together with the range
// [c[ch]+rank_ch(l), c[ch]+rank_ch(r+1)-1] that the backward extension of
// [l, r] by ch maps to, given the RLBWT's cumulative character-count
// array c (c[ch] = number of BWT symbols strictly less than ch).
//
// Grounded directly on stool's interval_search_data_structure.hpp: that
// C++ class wraps sdsl::interval_symbols to avoid a 256-wide alphabet
// walk when the underlying wavelet tree exposes a faster primitive; since
// ByteWaveletTree does not, this is the alphabet-walk fallback that
// contract documents, reimplemented directly against WaveletTree.Rank.
func IntervalSymbols(wt WaveletTree, c *[256]uint64, l, r uint64) []CharInterval {
	var out []CharInterval

	for ch := 0; ch < 256; ch++ {
		r1 := wt.Rank(l, byte(ch))
		r2 := wt.Rank(r+1, byte(ch))

		if r2 <= r1 {
			continue
		}

		left := c[ch] + r1
		right := c[ch] + r2 - 1
		out = append(out, CharInterval{Left: left, Right: right, C: byte(ch)})
	}

	return out
}

// ByteWaveletTree is a reference WaveletTree built over a fixed byte
// sequence at construction time.
type ByteWaveletTree struct {
	data []byte
	occ  [256]*bitvector.Vector
}

// Build constructs a ByteWaveletTree over seq. seq is not retained by
// reference; callers may mutate their own copy afterward.
func Build(seq []byte) *ByteWaveletTree {
	wt := &ByteWaveletTree{data: append([]byte(nil), seq...)}

	for c := 0; c < 256; c++ {
		wt.occ[c] = bitvector.New()
	}

	for _, b := range wt.data {
		for c := 0; c < 256; c++ {
			wt.occ[c].PushBack(byte(c) == b)
		}
	}

	return wt
}

// Size returns the number of symbols in the tree.
func (wt *ByteWaveletTree) Size() uint64 { return uint64(len(wt.data)) }

// Access returns the symbol at position i.
func (wt *ByteWaveletTree) Access(i uint64) byte { return wt.data[i] }

// Rank returns the number of occurrences of c in positions [0, i).
func (wt *ByteWaveletTree) Rank(i uint64, c byte) uint64 {
	if i == 0 {
		return 0
	}

	return wt.occ[c].Rank1(i - 1)
}
