// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package wavelet

import "testing"

func referenceRank(seq []byte, i uint64, c byte) uint64 {
	var n uint64
	for k := uint64(0); k < i; k++ {
		if seq[k] == c {
			n++
		}
	}
	return n
}

func TestAccessAndRank(t *testing.T) {
	seq := []byte("banana$")
	wt := Build(seq)

	if wt.Size() != uint64(len(seq)) {
		t.Fatalf("Size() = %d, want %d", wt.Size(), len(seq))
	}

	for i, want := range seq {
		if got := wt.Access(uint64(i)); got != want {
			t.Fatalf("Access(%d) = %q, want %q", i, got, want)
		}
	}

	for i := uint64(0); i <= uint64(len(seq)); i++ {
		for _, c := range []byte("abn$") {
			if got, want := wt.Rank(i, c), referenceRank(seq, i, c); got != want {
				t.Fatalf("Rank(%d, %q) = %d, want %d", i, c, got, want)
			}
		}
	}
}

func TestIntervalSymbols(t *testing.T) {
	seq := []byte("abracadabra$")
	wt := Build(seq)

	var c [256]uint64
	var running uint64

	var counts [256]uint64
	for _, b := range seq {
		counts[b]++
	}

	for ch := 0; ch < 256; ch++ {
		c[ch] = running
		running += counts[ch]
	}

	intervals := IntervalSymbols(wt, &c, 0, uint64(len(seq)-1))

	var total uint64
	seen := map[byte]bool{}

	for _, iv := range intervals {
		if seen[iv.C] {
			t.Fatalf("character %q reported twice", iv.C)
		}
		seen[iv.C] = true

		if iv.Right < iv.Left {
			t.Fatalf("interval for %q has right < left: %+v", iv.C, iv)
		}

		total += iv.Right - iv.Left + 1
	}

	if total != uint64(len(seq)) {
		t.Fatalf("interval sizes sum to %d, want %d", total, len(seq))
	}

	for ch := range counts {
		if counts[ch] == 0 {
			continue
		}

		if !seen[byte(ch)] {
			t.Fatalf("character %q (count %d) missing from IntervalSymbols output", byte(ch), counts[ch])
		}
	}
}

func TestIntervalSymbolsSubRange(t *testing.T) {
	seq := []byte("mississippi$")
	wt := Build(seq)

	var c [256]uint64
	var running uint64
	var counts [256]uint64

	for _, b := range seq {
		counts[b]++
	}

	for ch := 0; ch < 256; ch++ {
		c[ch] = running
		running += counts[ch]
	}

	// Sub-range covering only the interior "ssissipp" run.
	intervals := IntervalSymbols(wt, &c, 2, 9)

	var total uint64
	for _, iv := range intervals {
		total += iv.Right - iv.Left + 1
	}

	if want := uint64(9 - 2 + 1); total != want {
		t.Fatalf("interval sizes sum to %d, want %d", total, want)
	}
}
