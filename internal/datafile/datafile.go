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

/*
Package datafile reads and writes the little-endian length-prefixed uint64
file format the benchmark CLI uses to load keys: an 8-byte little-endian
count N, followed by N little-endian uint64 values.

This is a collaborator of the learned index, not part of it: radixspline
and spline receive an already-loaded []uint64 and never touch a file
themselves. No example repo in the retrieved pack reaches for a
third-party binary-framing library for this shape (a bare count-prefixed
array), so this uses encoding/binary directly - see DESIGN.md.
*/
package datafile

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// Read loads a []uint64 from the little-endian length-prefixed format at
// path.
func Read(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadFrom(bufio.NewReader(f))
}

// ReadFrom loads a []uint64 from r in the little-endian length-prefixed
// format.
func ReadFrom(r io.Reader) ([]uint64, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	data := make([]uint64, count)
	if count > 0 {
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Write stores data at path in the little-endian length-prefixed format.
func Write(path string, data []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteTo(w, data); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTo stores data into w in the little-endian length-prefixed format.
func WriteTo(w io.Writer, data []uint64) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}
