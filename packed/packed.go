// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package packed implements prefix-sum and threshold-search over lanes of
// a fixed width packed into 64-bit words, for every lane width the flc
// package's auto-widening vector can take: 1, 2, 4, 8, 16, 32 and 64 bits.
package packed

import "github.com/TNishimoto/stool-go/bitops"

// Widths lists the code widths a packed vector can widen through, in order.
var Widths = [7]uint{1, 2, 4, 8, 16, 32, 64}

// NextWidth returns the smallest width in Widths that can hold v.
func NextWidth(v uint64) uint {
	for _, w := range Widths {
		if w == 64 || v < (uint64(1)<<w) {
			return w
		}
	}

	return 64
}

// LanesPerWord returns 64/w, the number of lanes of width w in one word.
func LanesPerWord(w uint) int {
	return 64 / int(w)
}

// Lane returns the i-th lane (0-indexed, left to right / MSB-first) of
// width w packed in word x.
func Lane(w uint, x uint64, i int) uint64 {
	shift := uint(64) - uint(i+1)*w
	mask := uint64(1)<<w - 1

	if w == 64 {
		return x
	}

	return (x >> shift) & mask
}

// SumWord returns the sum of the 64/w lanes of width w packed into x.
func SumWord(w uint, x uint64) uint64 {
	switch w {
	case 1:
		return uint64(bitops.PopCount(x))
	case 64:
		return x
	}

	var sum uint64
	n := LanesPerWord(w)

	for i := 0; i < n; i++ {
		sum += Lane(w, x, i)
	}

	return sum
}

// PSumWord returns the sum of lanes [0..i] (inclusive) of width w packed
// into the word array words.
func PSumWord(w uint, words []uint64, i int) uint64 {
	lanes := LanesPerWord(w)
	fullWords := i / lanes
	var sum uint64

	for wi := 0; wi < fullWords; wi++ {
		sum += SumWord(w, words[wi])
	}

	rem := i - fullWords*lanes

	for li := 0; li <= rem; li++ {
		sum += Lane(w, words[fullWords], li)
	}

	return sum
}

// FindGEInWord returns the smallest lane index k (0-indexed) such that the
// prefix sum over lanes [0..k] of x (width w) is >= y, or 64/w if the total
// sum of x is < y.
func FindGEInWord(w uint, x uint64, y uint64) int {
	n := LanesPerWord(w)
	var running uint64

	for i := 0; i < n; i++ {
		running += Lane(w, x, i)

		if running >= y {
			return i
		}
	}

	return n
}

// Search returns the first global lane index k (0-indexed, across the whole
// word array) such that the prefix sum of lanes [0..k] (width w) is >= x,
// or -1 if x is greater than the total sum of all lanes.
func Search(w uint, words []uint64, x uint64, total uint64) int {
	if x > total {
		return -1
	}

	lanes := LanesPerWord(w)
	var running uint64

	for wi, word := range words {
		wordSum := SumWord(w, word)

		if running+wordSum >= x {
			k := FindGEInWord(w, word, x-running)
			return wi*lanes + k
		}

		running += wordSum
	}

	return -1
}
