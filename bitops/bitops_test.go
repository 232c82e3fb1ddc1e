// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitops

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelect1(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for trial := 0; trial < 2000; trial++ {
		w := rnd.Uint64()

		var positions []int

		for pos := 0; pos < 64; pos++ {
			if GetBit(w, uint(pos)) {
				positions = append(positions, pos)
			}
		}

		for k := 0; k < len(positions)+1; k++ {
			got := Select1(w, k)

			var want int

			if k < len(positions) {
				want = positions[k]
			} else {
				want = -1
			}

			if got != want {
				t.Fatalf("Select1(%x, %d) = %d, want %d", w, k, got, want)
			}
		}
	}
}

func TestPopCountMatchesStdlib(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		w := rnd.Uint64()

		if got, want := PopCount(w), bits.OnesCount64(w); got != want {
			t.Fatalf("PopCount(%x) = %d, want %d", w, got, want)
		}
	}
}

func TestWriteBitsRoundTrip(t *testing.T) {
	w := uint64(0)
	w = WriteBits(w, 4, 8, 0xAB<<56)

	got := (w << 4) >> 56
	if want := uint64(0xAB); got != want {
		t.Fatalf("WriteBits field = %x, want %x", got, want)
	}
}

func TestFill(t *testing.T) {
	w := Fill(0, 10, 5, true)

	for pos := uint(0); pos < 64; pos++ {
		want := pos >= 10 && pos < 15
		if got := GetBit(w, pos); got != want {
			t.Fatalf("bit %d = %v, want %v", pos, got, want)
		}
	}
}

func TestShiftRightInsertsZeros(t *testing.T) {
	words := []uint64{0xFFFFFFFFFFFFFFFF, 0x0}
	ShiftRight(words, 60, 8)

	var bitsOut []bool
	for i := uint(0); i < 128; i++ {
		bitsOut = append(bitsOut, getBit(words, i))
	}

	var want []bool
	for i := 0; i < 60; i++ {
		want = append(want, true)
	}
	for i := 0; i < 8; i++ {
		want = append(want, false)
	}
	for i := 68; i < 72; i++ {
		want = append(want, true)
	}
	for i := 72; i < 128; i++ {
		want = append(want, false)
	}

	if diff := cmp.Diff(want, bitsOut); diff != "" {
		t.Fatalf("ShiftRight mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftLeftDeletesBits(t *testing.T) {
	words := []uint64{0xF0F0F0F0F0F0F0F0, 0xFFFFFFFFFFFFFFFF}
	before := make([]uint64, len(words))
	copy(before, words)

	ShiftLeft(words, 0, 4)

	// After deleting the first 4 bits, bit i should equal the original bit i+4.
	for i := uint(0); i < 124; i++ {
		if getBit(words, i) != getBit(before, i+4) {
			t.Fatalf("bit %d mismatch after ShiftLeft", i)
		}
	}
}

func TestRank1(t *testing.T) {
	words := []uint64{0xF0F0F0F0F0F0F0F0, 0x00000000FFFFFFFF}

	got := Rank1(words, 0, 0, 1, 63)
	want := PopCount(words[0]) + PopCount(words[1])

	if got != want {
		t.Fatalf("Rank1 whole range = %d, want %d", got, want)
	}

	got2 := Rank1(words, 0, 0, 0, 7)
	want2 := rangePopCount(words[0], 0, 7)

	if got2 != want2 {
		t.Fatalf("Rank1 single word = %d, want %d", got2, want2)
	}
}
