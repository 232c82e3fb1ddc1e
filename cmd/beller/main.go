// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command beller drives the Beller LCP-interval enumerator from the
// command line, in four modes: enumerating intervals, measuring a wavelet
// tree, converting a raw BWT to the packed int-vector format, and
// self-testing against the internal/sais suffix-array oracle.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TNishimoto/stool-go/beller"
	"github.com/TNishimoto/stool-go/flc"
	"github.com/TNishimoto/stool-go/internal/logging"
	"github.com/TNishimoto/stool-go/internal/sais"
	"github.com/TNishimoto/stool-go/rlbwt"
	"github.com/TNishimoto/stool-go/textstats"
	"github.com/TNishimoto/stool-go/wavelet"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logging.FromEnv()

	var inputPath string
	var mode string

	rootCmd := &cobra.Command{
		Use:   "beller",
		Short: "Enumerate LCP intervals, measure a wavelet tree, pack a BWT, or self-test",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch mode {
			case "compute":
				return modeCompute(inputPath)
			case "wt":
				return modeWT(inputPath, log)
			case "iv":
				return modeIV(inputPath)
			case "test":
				return modeTest(inputPath, log)
			default:
				return fmt.Errorf("unknown mode %q: want one of test, compute, wt, iv", mode)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the input file")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "compute", "one of: test, compute, wt, iv")
	rootCmd.MarkFlagRequired("input")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		return 2
	}

	return 0
}

func readBWT(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sr := textstats.NewStreamReader(f, 0)
	return sr.ReadAll()
}

// modeCompute reads a raw BWT file and enumerates its LCP intervals to
// stdout, one "i j lcp" triple per line, in the enumerator's own
// nondecreasing-depth order.
func modeCompute(path string) error {
	bwt, err := readBWT(path)
	if err != nil {
		return err
	}

	if err := textstats.ValidateBWT(bwt); err != nil {
		return err
	}

	wt := wavelet.Build(bwt)
	idx, err := rlbwt.NewIndexFromBWT(bwt, wt)
	if err != nil {
		return err
	}

	e := beller.New(wt, idx.CArray(), uint64(len(bwt)), false)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for {
		iv, ok := e.Next()
		if !ok {
			break
		}

		fmt.Fprintf(w, "%d %d %d\n", iv.I, iv.J, iv.LCP)
	}

	return e.Err()
}

// modeWT reads a raw BWT file, builds a wavelet.ByteWaveletTree over it,
// and reports its size and alphabet.
func modeWT(path string, log *logging.Logger) error {
	bwt, err := readBWT(path)
	if err != nil {
		return err
	}

	wt := wavelet.Build(bwt)
	stats := textstats.Build(bwt)

	log.Infof("built wavelet tree over %d symbols", wt.Size())

	fmt.Printf("size:          %d\n", wt.Size())
	fmt.Printf("alphabet size: %d\n", stats.AlphabetSize)

	return nil
}

// modeIV reads a raw byte BWT and re-encodes it as a packed flc.Vector,
// writing the persisted binary layout to stdout: a little-endian u64
// length, u16 bitSize, u16 bufferWords, u8 codeWidth, followed by
// bufferWords*8 bytes of word payload.
func modeIV(path string) error {
	bwt, err := readBWT(path)
	if err != nil {
		return err
	}

	v := flc.New()
	for _, b := range bwt {
		v.PushBack(uint64(b))
	}

	words := v.ExposeWords()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	writeLE(w, uint64(v.Len()))
	writeLE(w, uint16(v.Len()*uint64(v.CodeWidth())))
	writeLE(w, uint16(len(words)))
	writeLE(w, uint8(v.CodeWidth()))

	for _, word := range words {
		writeLE(w, word)
	}

	return nil
}

func writeLE(w *bufio.Writer, v interface{}) {
	switch x := v.(type) {
	case uint8:
		w.WriteByte(x)
	case uint16:
		w.WriteByte(byte(x))
		w.WriteByte(byte(x >> 8))
	case uint64:
		for i := 0; i < 8; i++ {
			w.WriteByte(byte(x >> (8 * i)))
		}
	}
}

// modeTest treats the input as raw text, derives its BWT and LCP array
// via the internal/sais oracle, then checks that the core packages agree:
// BackwardISA must reconstruct the text in reverse, and the Beller
// enumerator's LCP-value-mode output must match Kasai's LCP array exactly.
func modeTest(path string, log *logging.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	sr := textstats.NewStreamReader(f, 0)
	text, err := sr.ReadAll()
	f.Close()
	if err != nil {
		return err
	}

	if err := textstats.ValidateText(text); err != nil {
		return err
	}

	if len(text) == 0 || text[len(text)-1] != 0 {
		text = append(text, 0)
	}

	sa := make([]int, len(text))
	sais.ComputeSA(text, sa)
	wantLCP := sais.ComputeLCP(text, sa)

	bwt := make([]byte, len(text))
	for i, p := range sa {
		if p == 0 {
			bwt[i] = text[len(text)-1]
		} else {
			bwt[i] = text[p-1]
		}
	}

	wt := wavelet.Build(bwt)
	idx, err := rlbwt.NewIndexFromBWT(bwt, wt)
	if err != nil {
		return err
	}

	log.Debugf("derived BWT of length %d with %d runs", len(bwt), len(idx.Runs()))

	it, err := idx.BackwardISA()
	if err != nil {
		return err
	}

	reconstructed := make([]byte, len(text))
	pos := len(text) - 1
	reconstructed[pos] = text[pos]

	// BackwardISA yields ISA[n-1..0], n values total; T[n-1] is already
	// known (the terminator), so only the first n-1 values are needed to
	// fill T[n-2..0].
	for pos > 0 {
		isaVal, ok := it.Next()
		if !ok {
			break
		}

		pos--
		reconstructed[pos] = bwt[isaVal]
	}

	if it.Err() != nil {
		return it.Err()
	}

	for i := range text {
		if reconstructed[i] != text[i] {
			return fmt.Errorf("BackwardISA reconstruction mismatch at %d: got %q, want %q", i, reconstructed[i], text[i])
		}
	}

	e := beller.New(wt, idx.CArray(), uint64(len(bwt)), true)

	gotLCP := make([]int, len(bwt))
	for i := range gotLCP {
		gotLCP[i] = -1
	}

	for {
		iv, ok := e.Next()
		if !ok {
			break
		}

		gotLCP[iv.I] = int(iv.LCP)
	}

	if err := e.Err(); err != nil {
		return err
	}

	for i := range wantLCP {
		if gotLCP[i] != wantLCP[i] {
			return fmt.Errorf("LCP mismatch at %d: got %d, want %d", i, gotLCP[i], wantLCP[i])
		}
	}

	intervals, err := collectIntervals(wt, idx.CArray(), uint64(len(bwt)))
	if err != nil {
		return err
	}

	if err := checkPreorderNesting(intervals); err != nil {
		return err
	}

	fmt.Println("OK")
	return nil
}

// collectIntervals runs the enumerator in interval-enumeration mode,
// gathering every LCP interval it emits.
func collectIntervals(wt *wavelet.ByteWaveletTree, c [256]uint64, n uint64) ([]beller.LCPInterval, error) {
	e := beller.New(wt, c, n, false)

	var out []beller.LCPInterval
	for {
		iv, ok := e.Next()
		if !ok {
			break
		}

		out = append(out, iv)
	}

	return out, e.Err()
}

// checkPreorderNesting sorts intervals via beller.ByPreorder and verifies
// the laminar-family invariant every LCP interval set must satisfy in that
// order: walking the sequence with a stack of currently-open ancestors,
// each interval must either be properly nested inside the innermost still-open
// ancestor or, once that ancestor's range has been left behind, sit beside it
// at the same level. Grounded on stool's lcp_interval_preorder_comp.hpp,
// whose ordering only makes sense if intervals sorted by it actually nest.
func checkPreorderNesting(ivs []beller.LCPInterval) error {
	sorted := make([]beller.LCPInterval, len(ivs))
	copy(sorted, ivs)
	sort.Sort(beller.ByPreorder(sorted))

	var stack []beller.LCPInterval

	for _, iv := range sorted {
		for len(stack) > 0 && stack[len(stack)-1].J < iv.I {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if iv.I < top.I || iv.J > top.J {
				return fmt.Errorf("preorder nesting violated: (%d,%d,%d) is not contained in open ancestor (%d,%d,%d)",
					iv.I, iv.J, iv.LCP, top.I, top.J, top.LCP)
			}
		}

		stack = append(stack, iv)
	}

	return nil
}
