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

package main

import (
	"bytes"
	"io"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenzp/radixspline/internal/datafile"
	"github.com/chenzp/radixspline/radixspline"
)

func TestBenchSucceedsOnSmallDataset(t *testing.T) {
	data := make([]uint64, 5000)
	r := rand.New(rand.NewSource(42))
	for i := range data {
		data[i] = uint64(r.Int63n(1_000_000))
	}
	sort.Slice(data, func(i, j int) bool { return data[i] < data[j] })

	keys := []uint64{data[0], data[len(data)/2], data[len(data)-1]}

	var out bytes.Buffer
	err := bench(&out, data, keys, radixspline.Params{MaxError: 16})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "radix spline search:")
}

func TestSampleRangeClampsBounds(t *testing.T) {
	data := []uint64{1, 2, 3, 4, 5}
	assert.Equal(t, []uint64{1, 2}, sampleRange(data, -3, 2))
	assert.Equal(t, []uint64{4, 5}, sampleRange(data, 3, 100))
}

func TestRunLoadsFromFiles(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.bin")
	keysPath := filepath.Join(dir, "keys.bin")

	data := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	require.NoError(t, datafile.Write(dataPath, data))
	require.NoError(t, datafile.Write(keysPath, []uint64{3, 7}))

	var out bytes.Buffer
	code := run([]string{"bench", dataPath, keysPath}, &out, io.Discard)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "radix spline search:")
}

func TestRunRejectsBadUsage(t *testing.T) {
	code := run([]string{}, io.Discard, io.Discard)
	assert.Equal(t, 2, code)

	code = run([]string{"bench", "only-one-arg"}, io.Discard, io.Discard)
	assert.Equal(t, 2, code)
}
