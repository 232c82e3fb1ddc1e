// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

func naiveSA(t []byte) []int {
	sa := make([]int, len(t))
	for i := range sa {
		sa[i] = i
	}

	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(t[sa[i]:], t[sa[j]:]) < 0
	})

	return sa
}

func checkAgainstNaive(t *testing.T, text []byte) {
	t.Helper()

	got := make([]int, len(text))
	ComputeSA(text, got)

	want := naiveSA(text)

	if len(got) != len(want) {
		t.Fatalf("len(SA) = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SA[%d] = %d, want %d\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestComputeSAKnownStrings(t *testing.T) {
	cases := [][]byte{
		[]byte("banana\x00"),
		[]byte("mississippi\x00"),
		[]byte("aaaaa\x00"),
		[]byte("a\x00"),
		[]byte("abcabcabc\x00"),
	}

	for _, text := range cases {
		checkAgainstNaive(t, text)
	}
}

func TestComputeSAEmpty(t *testing.T) {
	var text []byte
	sa := make([]int, 0)
	ComputeSA(text, sa) // must not panic
}

func TestComputeSARandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		n := rnd.Intn(200) + 1
		text := make([]byte, n)

		for i := range text[:n-1] {
			text[i] = byte(rnd.Intn(3)) + 1 // alphabet {1,2,3}, avoid 0 except terminator
		}

		text[n-1] = 0 // unique terminator, smallest symbol

		checkAgainstNaive(t, text)
	}
}

func TestComputeLCPMatchesDefinition(t *testing.T) {
	text := []byte("mississippi\x00")
	sa := make([]int, len(text))
	ComputeSA(text, sa)

	lcp := ComputeLCP(text, sa)

	if lcp[0] != 0 {
		t.Fatalf("lcp[0] = %d, want 0", lcp[0])
	}

	for i := 1; i < len(sa); i++ {
		a, b := text[sa[i-1]:], text[sa[i]:]

		var want int
		for want < len(a) && want < len(b) && a[want] == b[want] {
			want++
		}

		if lcp[i] != want {
			t.Fatalf("lcp[%d] = %d, want %d", i, lcp[i], want)
		}
	}
}
