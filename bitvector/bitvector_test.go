// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitvector

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func toSlice(v *Vector) []bool {
	out := make([]bool, v.Size())
	for i := range out {
		out[i] = v.Get(uint64(i))
	}
	return out
}

func TestPushBackMatchesReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	v := New()
	var want []bool

	for i := 0; i < 5000; i++ {
		b := rnd.Intn(2) == 1
		v.PushBack(b)
		want = append(want, b)
	}

	if diff := cmp.Diff(want, toSlice(v)); diff != "" {
		t.Fatalf("mismatch after PushBack (-want +got):\n%s", diff)
	}

	var ones uint64
	for _, b := range want {
		if b {
			ones++
		}
	}

	if v.Num1() != ones {
		t.Fatalf("Num1 = %d, want %d", v.Num1(), ones)
	}
}

func TestPushFrontPrepends(t *testing.T) {
	v := New()
	v.PushBack(true)
	v.PushFront(false)
	v.PushFront(true)

	want := []bool{true, false, true}

	if diff := cmp.Diff(want, toSlice(v)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRankSelectInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	v := New()
	var bitsArr []bool

	for i := 0; i < 3000; i++ {
		b := rnd.Intn(4) == 0
		v.PushBack(b)
		bitsArr = append(bitsArr, b)
	}

	for i := 0; i < len(bitsArr); i++ {
		var want uint64

		for k := 0; k <= i; k++ {
			if bitsArr[k] {
				want++
			}
		}

		if got := v.Rank1(uint64(i)); got != want {
			t.Fatalf("Rank1(%d) = %d, want %d", i, got, want)
		}
	}

	var ones []int
	for i, b := range bitsArr {
		if b {
			ones = append(ones, i)
		}
	}

	for k, want := range ones {
		if got := v.Select1(uint64(k)); got != int64(want) {
			t.Fatalf("Select1(%d) = %d, want %d", k, got, want)
		}
	}

	if got := v.Select1(uint64(len(ones))); got != -1 {
		t.Fatalf("Select1 past end = %d, want -1", got)
	}
}

func TestInsertEraseRoundTrip(t *testing.T) {
	v := New()
	for _, b := range []bool{true, false, true, true, false} {
		v.PushBack(b)
	}

	if err := v.Insert(2, true); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	want := []bool{true, false, true, true, true, false}

	if diff := cmp.Diff(want, toSlice(v)); diff != "" {
		t.Fatalf("mismatch after Insert (-want +got):\n%s", diff)
	}

	if err := v.Erase(2, 1); err != nil {
		t.Fatalf("Erase: %v", err)
	}

	want2 := []bool{true, false, true, true, false}

	if diff := cmp.Diff(want2, toSlice(v)); diff != "" {
		t.Fatalf("mismatch after Erase (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	v := New()
	for i := 0; i < 8; i++ {
		v.PushBack(false)
	}

	if err := v.Replace(2, uint64(0b101)<<61, 3); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	want := []bool{false, false, true, false, true, false, false, false}

	if diff := cmp.Diff(want, toSlice(v)); diff != "" {
		t.Fatalf("mismatch after Replace (-want +got):\n%s", diff)
	}
}

func TestEmptyVectorBoundaries(t *testing.T) {
	v := New()

	if got := v.Rank1(0); got != 0 {
		t.Fatalf("Rank1 on empty = %d, want 0", got)
	}

	if got := v.Select1(0); got != -1 {
		t.Fatalf("Select1 on empty = %d, want -1", got)
	}

	v.PushBack(true)

	if v.Size() != 1 {
		t.Fatalf("Size after first PushBack = %d, want 1", v.Size())
	}
}

func TestPush64AcrossWordBoundary(t *testing.T) {
	v := New()

	for i := 0; i < 5; i++ {
		v.PushBack(true)
	}

	v.PushBack64(uint64(0xABCD)<<48, 16)

	if got := v.Size(); got != 21 {
		t.Fatalf("Size = %d, want 21", got)
	}

	val := readField(v.words, 5, 16)

	if got := val >> 48; got != 0xABCD {
		t.Fatalf("straddled field = %x, want ABCD", got)
	}
}

func TestSuccessorPredecessorRevSelectInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	v := New()
	var bitsArr []bool

	for i := 0; i < 3000; i++ {
		b := rnd.Intn(4) == 0
		v.PushBack(b)
		bitsArr = append(bitsArr, b)
	}

	var ones []int
	for i, b := range bitsArr {
		if b {
			ones = append(ones, i)
		}
	}

	// Select1Successor(i): smallest set-bit position >= i+1, or -1.
	for i := 0; i <= len(bitsArr); i++ {
		var want int64 = -1

		for _, p := range ones {
			if p >= i+1 {
				want = int64(p)
				break
			}
		}

		if got := v.Select1Successor(uint64(i)); got != want {
			t.Fatalf("Select1Successor(%d) = %d, want %d", i, got, want)
		}
	}

	// Select1Predecessor(i): largest set-bit position < i, or -1.
	for i := 0; i <= len(bitsArr); i++ {
		var want int64 = -1

		for k := len(ones) - 1; k >= 0; k-- {
			if ones[k] < i {
				want = int64(ones[k])
				break
			}
		}

		if got := v.Select1Predecessor(uint64(i)); got != want {
			t.Fatalf("Select1Predecessor(%d) = %d, want %d", i, got, want)
		}
	}

	// RevSelect1(k): the (k+1)-th set bit counted from the end.
	for k, want := range ones {
		rev := len(ones) - 1 - k

		if got := v.RevSelect1(uint64(rev)); got != int64(want) {
			t.Fatalf("RevSelect1(%d) = %d, want %d", rev, got, want)
		}
	}

	if got := v.RevSelect1(uint64(len(ones))); got != -1 {
		t.Fatalf("RevSelect1 past end = %d, want -1", got)
	}
}

func TestSuccessorPredecessorRevSelectEmptyVector(t *testing.T) {
	v := New()

	if got := v.Select1Successor(0); got != -1 {
		t.Fatalf("Select1Successor on empty = %d, want -1", got)
	}

	if got := v.Select1Predecessor(0); got != -1 {
		t.Fatalf("Select1Predecessor(0) on empty = %d, want -1", got)
	}

	if got := v.RevSelect1(0); got != -1 {
		t.Fatalf("RevSelect1 on empty = %d, want -1", got)
	}

	v.PushBack(true)

	if got := v.Select1Predecessor(0); got != -1 {
		t.Fatalf("Select1Predecessor(0) with one set bit at 0 = %d, want -1", got)
	}

	if got := v.Select1Successor(0); got != -1 {
		t.Fatalf("Select1Successor(0) with no bit set beyond 0 = %d, want -1", got)
	}

	if got := v.RevSelect1(0); got != 0 {
		t.Fatalf("RevSelect1(0) with one set bit at 0 = %d, want 0", got)
	}
}

func TestShortCapacity(t *testing.T) {
	s := NewShort()

	if err := s.PushBack64(0, shortMaxBits%64); err != nil {
		t.Fatalf("PushBack64: %v", err)
	}

	big := shortMaxBits
	for i := 0; i < big/64; i++ {
		if err := s.PushBack64(0, 64); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}

	if err := s.PushBack(true); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	if err := s.PushFront(true); err != ErrCapacityExceeded {
		t.Fatalf("PushFront: expected ErrCapacityExceeded, got %v", err)
	}

	if err := s.Insert(0, true); err != ErrCapacityExceeded {
		t.Fatalf("Insert: expected ErrCapacityExceeded, got %v", err)
	}
}

func TestShortPushFrontAndInsertRespectCapacity(t *testing.T) {
	s := NewShort()

	if err := s.PushFront(true); err != nil {
		t.Fatalf("PushFront: %v", err)
	}

	if err := s.Insert(0, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	want := []bool{false, true}

	if diff := cmp.Diff(want, toSlice(&s.Vector)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	big := shortMaxBits
	for i := 0; i < big-2; i++ {
		if err := s.PushFront(false); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}

	if err := s.PushFront(true); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded at cap, got %v", err)
	}

	if err := s.Insert(0, true); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded at cap, got %v", err)
	}
}
