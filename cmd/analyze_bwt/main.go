// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command analyze_bwt prints summary statistics for a raw BWT file: its
// length, run count, alphabet size, per-character counts, max/average LCP,
// and a repetitiveness ratio δ = runs/n.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TNishimoto/stool-go/beller"
	"github.com/TNishimoto/stool-go/internal/logging"
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

	rootCmd := &cobra.Command{
		Use:   "analyze_bwt",
		Short: "Print summary statistics for a raw BWT file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(inputPath, log)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the raw BWT file")
	rootCmd.MarkFlagRequired("input")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)

		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return 1
		}

		return exitCodeFor(err)
	}

	return 0
}

func exitCodeFor(err error) int {
	switch err {
	case textstats.ErrIO:
		return 1
	case textstats.ErrBadInput:
		return 2
	default:
		return 2
	}
}

func analyze(path string, log *logging.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sr := textstats.NewStreamReader(f, 0)

	bwt, err := sr.ReadAll()
	if err != nil {
		return err
	}

	log.Debugf("read %d bytes, checksum %08x", len(bwt), sr.Checksum)

	if err := textstats.ValidateBWT(bwt); err != nil {
		return err
	}

	stats := textstats.Build(bwt)

	wt := wavelet.Build(bwt)
	idx, err := rlbwt.NewIndexFromBWT(bwt, wt)
	if err != nil {
		return textstats.ErrBadInput
	}

	maxLCP, avgLCP, err := lcpSummary(wt, idx.CArray(), uint64(len(bwt)))
	if err != nil {
		return err
	}

	delta := float64(len(idx.Runs())) / float64(len(bwt))

	fmt.Printf("n:             %d\n", len(bwt))
	fmt.Printf("runs:          %d\n", len(idx.Runs()))
	fmt.Printf("alphabet size: %d\n", stats.AlphabetSize)
	fmt.Printf("max LCP:       %d\n", maxLCP)
	fmt.Printf("average LCP:   %.4f\n", avgLCP)
	fmt.Printf("delta (r/n):   %.6f\n", delta)
	fmt.Println("per-character counts:")

	for c := 0; c < 256; c++ {
		if stats.CharCounter[c] == 0 {
			continue
		}

		fmt.Printf("  %q: %d\n", byte(c), stats.CharCounter[c])
	}

	return nil
}

func lcpSummary(wt *wavelet.ByteWaveletTree, c [256]uint64, n uint64) (max uint64, avg float64, err error) {
	e := beller.New(wt, c, n, true)

	var sum uint64
	var count uint64

	for {
		iv, ok := e.Next()
		if !ok {
			break
		}

		if iv.LCP > max {
			max = iv.LCP
		}

		sum += iv.LCP
		count++
	}

	if err := e.Err(); err != nil {
		return 0, 0, beller.ErrInconsistent
	}

	if count == 0 {
		return 0, 0, nil
	}

	return max, float64(sum) / float64(count), nil
}
