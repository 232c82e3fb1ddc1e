// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package flc implements a fixed-length-code packed vector of
// non-negative integers: a sequence stored at a uniform code width
// w in {1,2,4,8,16,32,64} that widens automatically as larger values are
// pushed, and tracks a running sum so that Search (threshold lookup) and
// PSum (prefix sum) are O(1) per word via package packed.
package flc

import (
	"github.com/TNishimoto/stool-go/bitvector"
	"github.com/TNishimoto/stool-go/packed"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "flc: " + string(e) }

var (
	// ErrOutOfRange is returned when an index or length violates a
	// documented bound.
	ErrOutOfRange error = Error("index out of range")
)

// Vector is a fixed-length-code packed vector of non-negative integers.
type Vector struct {
	bits      bitvector.Vector
	n         uint64 // number of logical lanes
	codeWidth uint   // current code width, one of packed.Widths
	sum       uint64 // running sum of all lanes
}

// New creates an empty FLC vector. The initial code width is 1.
func New() *Vector {
	return &Vector{codeWidth: 1}
}

// Len returns the number of lanes (integers) in the vector.
func (v *Vector) Len() uint64 { return v.n }

// CodeWidth returns the current code width in bits.
func (v *Vector) CodeWidth() uint { return v.codeWidth }

// Sum returns the sum of all elements currently in the vector.
func (v *Vector) Sum() uint64 { return v.sum }

// Get returns the i-th element.
func (v *Vector) Get(i uint64) uint64 {
	return v.laneAt(i)
}

func (v *Vector) laneAt(i uint64) uint64 {
	val := uint64(0)
	pos := i * uint64(v.codeWidth)

	for b := uint(0); b < v.codeWidth; b++ {
		if v.bits.Get(pos + uint64(b)) {
			val |= uint64(1) << (v.codeWidth - 1 - b)
		}
	}

	return val
}

// Set replaces the i-th element with value, widening the vector if value
// does not fit the current code width.
func (v *Vector) Set(i uint64, value uint64) error {
	if i >= v.n {
		return ErrOutOfRange
	}

	old := v.laneAt(i)

	if need := packed.NextWidth(value); need > v.codeWidth {
		v.widen(need)
	}

	v.writeLane(i, value)
	v.sum = v.sum - old + value
	return nil
}

// PushBack appends value to the back of the vector, widening as needed.
func (v *Vector) PushBack(value uint64) {
	if need := packed.NextWidth(value); need > v.codeWidth {
		v.widen(need)
	}

	v.bits.PushBack64(value<<(64-v.codeWidth), v.codeWidth)
	v.n++
	v.sum += value
}

// PushFront prepends value to the front of the vector, widening as needed.
func (v *Vector) PushFront(value uint64) {
	if need := packed.NextWidth(value); need > v.codeWidth {
		v.widen(need)
	}

	v.bits.PushFront64(value<<(64-v.codeWidth), v.codeWidth)
	v.n++
	v.sum += value
}

// PopBack removes and returns the last element.
func (v *Vector) PopBack() (uint64, error) {
	if v.n == 0 {
		return 0, ErrOutOfRange
	}

	val := v.laneAt(v.n - 1)

	if err := v.bits.Erase((v.n-1)*uint64(v.codeWidth), v.codeWidth); err != nil {
		return 0, err
	}

	v.n--
	v.sum -= val
	return val, nil
}

// PopFront removes and returns the first element.
func (v *Vector) PopFront() (uint64, error) {
	if v.n == 0 {
		return 0, ErrOutOfRange
	}

	val := v.laneAt(0)

	if err := v.bits.Erase(0, v.codeWidth); err != nil {
		return 0, err
	}

	v.n--
	v.sum -= val
	return val, nil
}

// Insert inserts value at lane index i, widening as needed.
func (v *Vector) Insert(i uint64, value uint64) error {
	if i > v.n {
		return ErrOutOfRange
	}

	if need := packed.NextWidth(value); need > v.codeWidth {
		v.widen(need)
	}

	if err := v.bits.Insert64(i*uint64(v.codeWidth), value<<(64-v.codeWidth), v.codeWidth); err != nil {
		return err
	}

	v.n++
	v.sum += value
	return nil
}

// Erase removes the element at lane index i.
func (v *Vector) Erase(i uint64) error {
	if i >= v.n {
		return ErrOutOfRange
	}

	val := v.laneAt(i)

	if err := v.bits.Erase(i*uint64(v.codeWidth), v.codeWidth); err != nil {
		return err
	}

	v.n--
	v.sum -= val
	return nil
}

// PSum returns the sum of lanes [0..i] (inclusive).
func (v *Vector) PSum(i uint64) uint64 {
	return v.prefixSumBits(i*uint64(v.codeWidth) + uint64(v.codeWidth) - 1)
}

// prefixSumBits sums whole words via packed.PSumWord, exposing the
// internal word array of the backing bitvector.Vector through wordsOf.
func (v *Vector) prefixSumBits(lastBit uint64) uint64 {
	words := wordsOf(&v.bits)
	lastLane := int(lastBit / uint64(v.codeWidth))
	return packed.PSumWord(v.codeWidth, words, lastLane)
}

// Search returns the first lane index p with PSum(p) >= x, or -1 if
// x exceeds the vector's total sum.
func (v *Vector) Search(x uint64) int64 {
	if v.n == 0 {
		return -1
	}

	if x == 0 {
		return 0
	}

	if x > v.sum {
		return -1
	}

	words := wordsOf(&v.bits)
	return int64(packed.Search(v.codeWidth, words, x, v.sum))
}

// ExposeWords returns the raw 64-bit words backing the vector, for callers
// that need to serialize the packed representation directly (the format
// described in spec.md §6.3).
func (v *Vector) ExposeWords() []uint64 {
	return wordsOf(&v.bits)
}

// ShrinkToFit narrows the code width to the minimum that fits every
// current element, and releases unused backing capacity.
func (v *Vector) ShrinkToFit() {
	var maxVal uint64

	for i := uint64(0); i < v.n; i++ {
		if val := v.laneAt(i); val > maxVal {
			maxVal = val
		}
	}

	newWidth := packed.NextWidth(maxVal)

	if newWidth < v.codeWidth {
		v.rewidthTo(newWidth)
	}

	v.bits.ShrinkToFit()
}

// writeLane overwrites the i-th lane in place without changing n or sum.
func (v *Vector) writeLane(i uint64, value uint64) {
	pos := i * uint64(v.codeWidth)
	if err := v.bits.Replace(pos, value<<(64-v.codeWidth), v.codeWidth); err != nil {
		panic(err) // internal invariant: i < n and codeWidth fits value
	}
}

// widen reallocates the backing bit-vector at a larger code width,
// rewriting every existing lane.
func (v *Vector) widen(newWidth uint) {
	v.rewidthTo(newWidth)
}

func (v *Vector) rewidthTo(newWidth uint) {
	if newWidth == v.codeWidth {
		return
	}

	newBits := bitvector.New()

	for i := uint64(0); i < v.n; i++ {
		val := v.laneAt(i)
		newBits.PushBack64(val<<(64-newWidth), newWidth)
	}

	v.bits = *newBits
	v.codeWidth = newWidth
}

// wordsOf exposes the raw word array backing a bitvector.Vector so that
// package packed can be applied directly to it. bitvector.Vector and
// flc.Vector are both owned, non-aliased structures within this module;
// this accessor keeps the word layout private to bitvector while letting
// flc reuse packed's psum/search instead of re-deriving them.
func wordsOf(b *bitvector.Vector) []uint64 {
	return bitvector.ExposeWords(b)
}
