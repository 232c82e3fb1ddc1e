// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitvector implements a growable bit-sequence with amortized O(1)
// push/pop at the back, O(m) push/pop at the front, straddling-safe
// insert/erase/replace, and rank1/select1 over the whole sequence.
//
// The backing store is a []uint64 word array using the MSB-first
// convention of package bitops. Capacity grows through a doubling schedule
// up to 256 words and a x1.2 schedule beyond that, mirroring the way the
// teacher's bzip2.Reader/Writer grow their internal byte buffers in
// discrete steps rather than one word at a time.
package bitvector

import (
	"github.com/TNishimoto/stool-go/bitops"
	"github.com/TNishimoto/stool-go/packed"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "bitvector: " + string(e) }

var (
	// ErrOutOfRange is returned when an index, position or length violates
	// a documented bound.
	ErrOutOfRange error = Error("index out of range")

	// ErrCapacityExceeded is returned when a push would exceed a
	// component's hard cap (only reachable on the Short variant).
	ErrCapacityExceeded error = Error("capacity exceeded")
)

// Vector is an unbounded, heap-backed growable bit-sequence.
type Vector struct {
	words []uint64
	size  uint64 // number of live bits
	num1  uint64 // popcount of the live bits
}

// New creates an empty bit-vector.
func New() *Vector {
	return &Vector{}
}

// Size returns the number of bits in the vector.
func (v *Vector) Size() uint64 { return v.size }

// Num1 returns the number of set bits in the vector.
func (v *Vector) Num1() uint64 { return v.num1 }

// Get returns bit i.
func (v *Vector) Get(i uint64) bool {
	return readField(v.words, i, 1) != 0
}

// PushBack appends a single bit to the back of the vector.
func (v *Vector) PushBack(b bool) {
	v.PushBack64(boolBit(b), 1)
}

// PushBack64 appends the high `length` bits of value to the back of the
// vector; 1 <= length <= 64.
func (v *Vector) PushBack64(value uint64, length uint) {
	v.ensureBits(v.size + uint64(length))
	writeField(v.words, v.size, length, value)
	v.num1 += uint64(bitops.PopCount(value >> (64 - length)))
	v.size += uint64(length)
}

// PushFront prepends a single bit to the front of the vector.
func (v *Vector) PushFront(b bool) {
	v.PushFront64(boolBit(b), 1)
}

// PushFront64 prepends the high `length` bits of value to the front of the
// vector; 1 <= length <= 64. O(m): implemented via shift_right from 0.
func (v *Vector) PushFront64(value uint64, length uint) {
	v.ensureBits(v.size + uint64(length))
	bitops.ShiftRight(v.words, 0, length)
	writeField(v.words, 0, length, value)
	v.num1 += uint64(bitops.PopCount(value >> (64 - length)))
	v.size += uint64(length)
}

// PopBack removes and returns the last bit of the vector.
func (v *Vector) PopBack() (bool, error) {
	if v.size == 0 {
		return false, ErrOutOfRange
	}

	b := v.Get(v.size - 1)
	writeField(v.words, v.size-1, 1, 0)

	if b {
		v.num1--
	}

	v.size--
	return b, nil
}

// PopFront removes and returns the first bit of the vector.
func (v *Vector) PopFront() (bool, error) {
	if v.size == 0 {
		return false, ErrOutOfRange
	}

	b := v.Get(0)
	bitops.ShiftLeft(v.words, 1, 1)

	if b {
		v.num1--
	}

	v.size--
	return b, nil
}

// Insert inserts a single bit at position p, widening the vector by 1.
func (v *Vector) Insert(p uint64, b bool) error {
	return v.Insert64(p, boolBit(b), 1)
}

// Insert64 inserts the high `length` bits of value at position p, widening
// the vector by `length`.
func (v *Vector) Insert64(p uint64, value uint64, length uint) error {
	if p > v.size {
		return ErrOutOfRange
	}

	v.ensureBits(v.size + uint64(length))
	bitops.ShiftRight(v.words, uint(p), length)
	writeField(v.words, p, length, value)
	v.num1 += uint64(bitops.PopCount(value >> (64 - length)))
	v.size += uint64(length)
	return nil
}

// Erase removes the `length`-bit field starting at position p.
func (v *Vector) Erase(p uint64, length uint) error {
	if uint64(length) == 0 || p+uint64(length) > v.size {
		return ErrOutOfRange
	}

	old := readField(v.words, p, length)
	v.num1 -= uint64(bitops.PopCount(old >> (64 - length)))
	bitops.ShiftLeft(v.words, uint(p+uint64(length)), length)
	v.size -= uint64(length)
	return nil
}

// Replace straddling-safe writes the high `length` bits of value into the
// field starting at position p, without changing the vector's size.
func (v *Vector) Replace(p uint64, value uint64, length uint) error {
	if p+uint64(length) > v.size {
		return ErrOutOfRange
	}

	old := readField(v.words, p, length)
	v.num1 -= uint64(bitops.PopCount(old >> (64 - length)))
	writeField(v.words, p, length, value)
	v.num1 += uint64(bitops.PopCount(value >> (64 - length)))
	return nil
}

// Rank1 returns the number of set bits in the closed bit range [0, i].
// Requires i < Size() on a non-empty vector; on an empty vector it returns 0.
func (v *Vector) Rank1(i uint64) uint64 {
	if v.size == 0 {
		return 0
	}

	return uint64(bitops.Rank1(v.words, 0, 0, int(i/64), uint(i%64)))
}

// Select1 returns the position of the (k+1)-th set bit (k is 0-indexed),
// or -1 if the vector has fewer than k+1 set bits.
func (v *Vector) Select1(k uint64) int64 {
	if v.size == 0 {
		return -1
	}

	return int64(packed.Search(1, v.words, k+1, v.num1))
}

// Select1Successor returns the smallest p >= i+1 with bit p set, or -1.
func (v *Vector) Select1Successor(i uint64) int64 {
	var cnt uint64

	if i < v.size {
		cnt = v.Rank1(i)
	} else {
		cnt = v.num1
	}

	return v.Select1(cnt)
}

// Select1Predecessor returns the largest p <= i-1 with bit p set, or -1.
func (v *Vector) Select1Predecessor(i uint64) int64 {
	if i == 0 {
		return -1
	}

	cnt := v.Rank1(i - 1)

	if cnt == 0 {
		return -1
	}

	return v.Select1(cnt - 1)
}

// RevSelect1 returns the position of the (k+1)-th set bit counted from the
// end of the vector, or -1.
func (v *Vector) RevSelect1(k uint64) int64 {
	if k >= v.num1 {
		return -1
	}

	return v.Select1(v.num1 - 1 - k)
}

// ExposeWords returns the raw backing word array of v. It exists so that
// package flc can apply package packed's psum/search directly to an FLC
// vector's bit-level storage instead of re-deriving those primitives;
// package bitvector otherwise keeps its word layout private.
func ExposeWords(v *Vector) []uint64 {
	return v.words
}

// ShrinkToFit releases unused backing word capacity.
func (v *Vector) ShrinkToFit() {
	need := int((v.size + 63) / 64)
	if need == 0 {
		need = 1
	}

	if len(v.words) > need {
		v.words = append([]uint64(nil), v.words[:need]...)
	}
}

func boolBit(b bool) uint64 {
	if b {
		return uint64(1) << 63
	}

	return 0
}

// ensureBits grows the backing word array, following a doubling schedule up
// to 256 words and a x1.2 schedule beyond that, so that it can hold at
// least need bits.
func (v *Vector) ensureBits(need uint64) {
	needWords := int((need + 63) / 64)

	if needWords <= len(v.words) {
		return
	}

	n := len(v.words)

	if n == 0 {
		n = 1
	}

	for n < needWords {
		if n < 256 {
			n *= 2
		} else {
			n = n + n/5 + 1
		}
	}

	grown := make([]uint64, n)
	copy(grown, v.words)
	v.words = grown
}

// readField reads the `length`-bit (1 <= length <= 64) field starting at
// bit position pos (MSB-first) from words, returned left-aligned in a
// uint64 (i.e. in the same high-bits convention as WriteBits' value
// parameter).
func readField(words []uint64, pos uint64, length uint) uint64 {
	wordIdx := pos / 64
	bitIdx := uint(pos % 64)

	if bitIdx+length <= 64 {
		shift := 64 - bitIdx - length
		mask := uint64(1)<<length - 1
		if length == 64 {
			mask = ^uint64(0)
		}
		field := (words[wordIdx] >> shift) & mask
		return field << (64 - length)
	}

	// Straddles two words.
	firstLen := 64 - bitIdx
	secondLen := length - firstLen
	hi := words[wordIdx] & (uint64(1)<<firstLen - 1)
	lo := words[wordIdx+1] >> (64 - secondLen)
	return (hi<<secondLen | lo) << (64 - length)
}

// writeField writes the high `length` bits of value into words starting at
// bit position pos (MSB-first), possibly straddling a word boundary.
func writeField(words []uint64, pos uint64, length uint, value uint64) {
	wordIdx := pos / 64
	bitIdx := uint(pos % 64)

	if bitIdx+length <= 64 {
		words[wordIdx] = bitops.WriteBits(words[wordIdx], bitIdx, length, value)
		return
	}

	firstLen := 64 - bitIdx
	secondLen := length - firstLen
	words[wordIdx] = bitops.WriteBits(words[wordIdx], bitIdx, firstLen, value)
	shiftedValue := value << firstLen
	words[wordIdx+1] = bitops.WriteBits(words[wordIdx+1], 0, secondLen, shiftedValue)
}
