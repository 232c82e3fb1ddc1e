// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package beller implements the Beller LCP-interval enumerator (component
// I): a breadth-first interval-refinement procedure over a BWT that emits
// every LCP interval in nondecreasing depth order, driving only
// interval-symbols queries on a wavelet.WaveletTree, without ever
// materializing the suffix array.
//
// Grounded directly, algorithm-for-algorithm, on stool's
// beller_component.hpp (BellerComponent/BellerSmallComponent) and
// lcp_interval_enumerator.hpp; reimplemented as an explicit state struct
// per DESIGN NOTES §9's "state machine, not coroutine" guidance rather
// than the C++ forward_iterator wrapper.
package beller

import (
	"math"
	"runtime"

	"github.com/TNishimoto/stool-go/bitvector"
	"github.com/TNishimoto/stool-go/internal/ringqueue"
	"github.com/TNishimoto/stool-go/wavelet"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "beller: " + string(e) }

// ErrInconsistent is returned when an internal invariant is violated: a
// corrupted wavelet tree or C-array causes an out-of-range access.
var ErrInconsistent error = Error("internal invariant violated")

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

// sentinelPos marks an undefined last_lb/last_idx cursor (⊥ in spec.md).
const sentinelPos = math.MaxUint64

// LCPInterval is a triple (i, j, lcp): the lexicographic-rank range of
// suffixes [i, j] sharing a common prefix of length lcp.
type LCPInterval struct {
	I, J, LCP uint64
}

// Sentinel is the end-of-stream marker value, matching spec.md's
// (MaxUint64, MaxUint64, MaxUint64).
var Sentinel = LCPInterval{I: math.MaxUint64, J: math.MaxUint64, LCP: math.MaxUint64}

// ByPreorder sorts LCP intervals in preorder (outer intervals before the
// inner intervals they contain), grounded on stool's
// lcp_interval_preorder_comp.hpp.
type ByPreorder []LCPInterval

func (s ByPreorder) Len() int      { return len(s) }
func (s ByPreorder) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s ByPreorder) Less(i, j int) bool {
	x, y := s[i], s[j]

	if x.I == y.I {
		if x.J == y.J {
			return x.LCP < y.LCP
		}

		return x.J > y.J
	}

	return x.I < y.I
}

// ByDepthOrder sorts LCP intervals by nondecreasing lcp, grounded on
// stool's lcp_interval_depth_order_comp.hpp.
type ByDepthOrder []LCPInterval

func (s ByDepthOrder) Len() int      { return len(s) }
func (s ByDepthOrder) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s ByDepthOrder) Less(i, j int) bool {
	x, y := s[i], s[j]

	if x.LCP == y.LCP {
		if x.I == y.I {
			return x.J < y.J
		}

		return x.I < y.I
	}

	return x.LCP < y.LCP
}

// State is the enumerator's lifecycle state (spec.md §4.10).
type State int

const (
	Fresh State = iota
	Running
	Drained
	Terminated
)

// Enumerator is the Beller LCP-interval enumerator. Construct with New,
// then call Next repeatedly until it returns ok=false.
type Enumerator struct {
	wt wavelet.WaveletTree
	c  [256]uint64
	n  uint64

	lcpMode bool

	queues  [256]*ringqueue.Queue
	counter [256]uint64

	occurrenceChars []byte

	checker    *bitvector.Vector // visited[0..n]
	lcpChecker *bitvector.Vector // only used when lcpMode

	outputQueue *ringqueue.Queue

	lastLb  uint64
	lastIdx uint64

	processEnd bool
	state      State
	err        error
}

// New creates an Enumerator over a BWT of length n with C-array c and
// wavelet tree wt. When lcpValueMode is true, the enumerator runs in
// LCP-value mode (spec.md §4.9): it emits one (pos, pos, lcpValue) tuple
// per text position instead of parent-closure intervals.
func New(wt wavelet.WaveletTree, c [256]uint64, n uint64, lcpValueMode bool) *Enumerator {
	e := &Enumerator{wt: wt, c: c, n: n, lcpMode: lcpValueMode}

	for i := range e.queues {
		e.queues[i] = ringqueue.New()
	}

	e.outputQueue = ringqueue.New()
	e.lastLb = sentinelPos
	e.lastIdx = sentinelPos

	e.checker = bitvector.New()
	for i := uint64(0); i < n+1; i++ {
		e.checker.PushBack(false)
	}

	if lcpValueMode {
		e.lcpChecker = bitvector.New()
		for i := uint64(0); i < n; i++ {
			e.lcpChecker.PushBack(false)
		}
	}

	e.state = Fresh
	return e
}

// State returns the enumerator's current lifecycle state.
func (e *Enumerator) State() State { return e.state }

// Next advances the enumerator and returns the next LCP interval, or
// ok=false once the enumeration is exhausted.
func (e *Enumerator) Next() (iv LCPInterval, ok bool) {
	defer errRecover(&e.err)

	switch e.state {
	case Fresh:
		e.initializeRoot()
		e.state = Running
	case Terminated:
		return LCPInterval{}, false
	case Drained:
		e.state = Terminated
		return LCPInterval{}, false
	}

	top, popped := e.outputQueue.Pop()
	if !popped {
		panic(ErrInconsistent) // Running guarantees a non-empty output queue
	}

	iv = LCPInterval{I: top.I, J: top.J, LCP: top.LCP}

	for e.outputQueue.Len() == 0 {
		if e.processEnd {
			e.state = Drained
			break
		}

		e.computeLevel()
	}

	return iv, true
}

// Err returns the error, if any, recorded by the last Next call.
func (e *Enumerator) Err() error { return e.err }

func (e *Enumerator) setChecker(p uint64) {
	if err := e.checker.Replace(p, uint64(1)<<63, 1); err != nil {
		panic(ErrInconsistent)
	}
}

func (e *Enumerator) setLCPChecker(p uint64) {
	if err := e.lcpChecker.Replace(p, uint64(1)<<63, 1); err != nil {
		panic(ErrInconsistent)
	}
}

// initializeRoot seeds depth 0: the root interval is emitted immediately,
// then split to seed depth-1 queues. Grounded on
// BellerComponent::first_process.
func (e *Enumerator) initializeRoot() {
	if e.n == 0 {
		panic(ErrInconsistent)
	}

	root := ringqueue.Item{I: 0, J: e.n - 1, LCP: 0}
	if e.lcpMode {
		e.outputQueue.Push(ringqueue.Item{I: 0, J: 0, LCP: 0})
		e.setLCPChecker(0)
	} else {
		e.outputQueue.Push(root)
	}

	children := wavelet.IntervalSymbols(e.wt, &e.c, root.I, root.J)

	var present [256]bool
	for _, ch := range children {
		e.queues[ch.C].Push(ringqueue.Item{I: ch.Left, J: ch.Right, LCP: 1})
		present[ch.C] = true
	}

	e.occurrenceChars = presentToSlice(&present)
}

// computeLevel runs one level step: §4.9's "One level step" over every
// char in occurrenceChars, refilling occurrenceChars and outputQueue, and
// setting processEnd when no interval was expanded at this depth.
// Grounded on BellerComponent::computeLCPIntervals/process.
func (e *Enumerator) computeLevel() {
	e.lastLb = sentinelPos
	e.lastIdx = sentinelPos

	for _, c := range e.occurrenceChars {
		e.counter[c] = uint64(e.queues[c].Len())
	}

	var present [256]bool
	var occB bool

	for _, c := range e.occurrenceChars {
		for e.counter[c] > 0 {
			top, popped := e.queues[c].Pop()
			if !popped {
				panic(ErrInconsistent)
			}
			e.counter[c]--
			occB = true

			if e.lcpMode {
				if !e.lcpChecker.Get(top.I) {
					lcpValue := uint64(0)
					if top.LCP > 0 {
						lcpValue = top.LCP - 1
					}
					e.outputQueue.Push(ringqueue.Item{I: top.I, J: top.I, LCP: lcpValue})
				}
				e.setLCPChecker(top.I)
			}

			if top.J+1 > e.n {
				panic(ErrInconsistent)
			}

			if !e.checker.Get(top.J + 1) {
				if e.lastLb == sentinelPos {
					e.lastLb = top.I
				}

				e.setChecker(top.J + 1)
				e.lastIdx = top.J + 1

				e.expandChildren(top, &present)
			} else {
				e.setChecker(top.J + 1)

				if top.I == e.lastIdx {
					if !e.lcpMode {
						if top.LCP == 0 {
							panic(ErrInconsistent)
						}

						e.outputQueue.Push(ringqueue.Item{I: e.lastLb, J: top.J, LCP: top.LCP - 1})
					}

					e.lastLb = sentinelPos
					e.lastIdx = sentinelPos

					e.expandChildren(top, &present)
				}
			}
		}
	}

	if !occB {
		e.processEnd = true
		return
	}

	e.occurrenceChars = presentToSlice(&present)
}

func (e *Enumerator) expandChildren(top ringqueue.Item, present *[256]bool) {
	children := wavelet.IntervalSymbols(e.wt, &e.c, top.I, top.J)

	for _, ch := range children {
		e.queues[ch.C].Push(ringqueue.Item{I: ch.Left, J: ch.Right, LCP: top.LCP + 1})
		present[ch.C] = true
	}
}

func presentToSlice(present *[256]bool) []byte {
	var out []byte

	for c := 0; c < 256; c++ {
		if present[c] {
			out = append(out, byte(c))
		}
	}

	return out
}
