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

package datafile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	data := []uint64{1, 2, 3, 1000, 1<<63 + 7}
	path := filepath.Join(t.TempDir(), "keys.bin")

	require.NoError(t, Write(path, data))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestWriteToReadFromEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, nil))

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadTruncatedFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, []uint64{1, 2, 3}))

	truncated := bytes.NewReader(buf.Bytes()[:len(buf.Bytes())-4])
	_, err := ReadFrom(truncated)
	assert.Error(t, err)
}
