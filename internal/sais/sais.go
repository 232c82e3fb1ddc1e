// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear-time suffix array algorithm (SA-IS),
// used exclusively as a test oracle: the rest of this module never
// materializes a suffix array, so this package exists only to manufacture
// ground-truth SA/BWT/LCP triples that the rlbwt package tests and the
// test mode of cmd/beller check their output against.
//
// computeSA_byte was missing from the retrieved reference sources (only
// the int-keyed core and the ComputeSA(T []byte, SA []int) declaration
// survived); it is reconstructed here as a thin byte-to-int adapter over
// computeSA_int, which is otherwise unmodified.
package sais

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length.
func ComputeSA(T []byte, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}

	if len(T) == 0 {
		return
	}

	Ti := make([]int, len(T))
	for i, b := range T {
		Ti[i] = int(b)
	}

	computeSA_int(Ti, SA, 0, len(Ti), 256)
}

// ComputeLCP computes the LCP array of T given its suffix array SA, using
// Kasai's O(n) algorithm: LCP[i] is the length of the common prefix of
// T[SA[i-1]:] and T[SA[i]:], with LCP[0] defined as 0.
func ComputeLCP(T []byte, SA []int) []int {
	n := len(T)
	lcp := make([]int, n)
	if n == 0 {
		return lcp
	}

	rank := make([]int, n)
	for i, p := range SA {
		rank[p] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}

		j := SA[rank[i]-1]
		for i+h < n && j+h < n && T[i+h] == T[j+h] {
			h++
		}

		lcp[rank[i]] = h

		if h > 0 {
			h--
		}
	}

	return lcp
}
