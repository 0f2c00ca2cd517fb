/*
Copyright 2014 Workiva, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command rsbench times point lookups against three strategies over the
// same sorted data: plain binary search, a spline-only index (no radix
// table), and the full radix-spline index. It either generates random
// data or loads both data and query keys from the little-endian
// length-prefixed uint64 file format datafile reads and writes.
//
// Usage:
//
//	rsbench bench
//	rsbench bench <data-path> <keys-path>
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/chenzp/radixspline/internal/datafile"
	"github.com/chenzp/radixspline/radixspline"
	"github.com/chenzp/radixspline/spline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "bench" {
		fmt.Fprintln(errOut, "usage: rsbench bench [<data-path> <keys-path>]")
		return 2
	}

	flagSet := flag.NewFlagSet("bench", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	numRadixBits := flagSet.Uint("radix-bits", 18, "radix prefix width")
	maxError := flagSet.Int("max-error", 32, "corridor half-width (epsilon)")
	if err := flagSet.Parse(args[1:]); err != nil {
		return 2
	}

	rest := flagSet.Args()

	var data, keys []uint64
	var err error
	switch len(rest) {
	case 0:
		fmt.Fprintln(out, "generating random data...")
		data, keys = randomDataAndKeys()
	case 2:
		fmt.Fprintln(out, "loading data...")
		if data, err = datafile.Read(rest[0]); err != nil {
			fmt.Fprintln(errOut, "error reading data:", err)
			return 1
		}
		if keys, err = datafile.Read(rest[1]); err != nil {
			fmt.Fprintln(errOut, "error reading keys:", err)
			return 1
		}
	default:
		fmt.Fprintln(errOut, "usage: rsbench bench [<data-path> <keys-path>]")
		return 2
	}

	params := radixspline.Params{NumRadixBits: *numRadixBits, MaxError: *maxError}
	if err := bench(out, data, keys, params); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func randomDataAndKeys() (data, keys []uint64) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	const n = 10_000_000
	const span = 100_000_000

	data = make([]uint64, n)
	for i := range data {
		data[i] = uint64(r.Int63n(span))
	}
	sort.Slice(data, func(i, j int) bool { return data[i] < data[j] })

	keys = append(keys, sampleRange(data, 100, 110)...)
	keys = append(keys, sampleRange(data, 1000, 1010)...)
	keys = append(keys, sampleRange(data, 10000, 10010)...)
	keys = append(keys, sampleRange(data, 100000, 100010)...)
	keys = append(keys, sampleRange(data, 500000, 500010)...)
	keys = append(keys, sampleRange(data, n-100000, n-99990)...)
	keys = append(keys, sampleRange(data, n-10000, n-9990)...)
	keys = append(keys, sampleRange(data, n-1000, n-990)...)
	keys = append(keys, sampleRange(data, n-100, n-90)...)
	return data, keys
}

func sampleRange(data []uint64, from, to int) []uint64 {
	if from < 0 {
		from = 0
	}
	if to > len(data) {
		to = len(data)
	}
	out := make([]uint64, to-from)
	copy(out, data[from:to])
	return out
}

// bench times binary search, the spline-only index, and the full
// radix-spline index over the same keys and reports nanoseconds/op for
// each, matching the three-way comparison in the index's own reference
// benchmark.
func bench(out io.Writer, data, keys []uint64, params radixspline.Params) error {
	splineIdx, err := spline.NewIndex(data, params.MaxError)
	if err != nil {
		return err
	}
	rsIdx, err := radixspline.Build(data, params)
	if err != nil {
		return err
	}

	var binaryTotal, splineTotal, radixTotal time.Duration

	for _, key := range keys {
		start := time.Now()
		i := sort.Search(len(data), func(i int) bool { return data[i] >= key })
		if i >= len(data) || data[i] != key {
			return fmt.Errorf("binary search: key %d not found", key)
		}
		binaryTotal += time.Since(start)

		start = time.Now()
		pos, ok := splineIdx.Search(key)
		if !ok || data[pos] != key {
			return fmt.Errorf("spline search: key %d not found", key)
		}
		splineTotal += time.Since(start)

		start = time.Now()
		pos, ok = rsIdx.Search(key)
		if !ok || data[pos] != key {
			return fmt.Errorf("radix spline search: key %d not found", key)
		}
		radixTotal += time.Since(start)
	}

	n := time.Duration(len(keys))
	fmt.Fprintf(out, "binary search:      %d ns/op\n", (binaryTotal / n).Nanoseconds())
	fmt.Fprintf(out, "spline search:       %d ns/op\n", (splineTotal / n).Nanoseconds())
	fmt.Fprintf(out, "radix spline search: %d ns/op\n", (radixTotal / n).Nanoseconds())
	return nil
}
