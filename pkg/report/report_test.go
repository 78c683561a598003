/*
Copyright 2022 CodeNotary, Inc. All rights reserved.

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

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteResults(t *testing.T) {
	path := ResultsPath(t.TempDir(), "sweep")
	require.True(t, strings.HasSuffix(path, "sweep.csv"))

	results := []Result{
		{DurationMs: 12, WritePercentage: 0, TransactionSize: 100, TransactionCount: 10},
		{DurationMs: 0, WritePercentage: 90, TransactionSize: 100, TransactionCount: 10},
	}

	require.NoError(t, os.WriteFile(path, []byte("stale content that must go away\n"), 0644))
	require.NoError(t, WriteResults(path, results))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"duration,write_percentage,transaction_size,transaction_count\n"+
			"12,0,100,10\n"+
			"0,90,100,10\n",
		string(b))

	read, err := ReadResults(path)
	require.NoError(t, err)
	require.Equal(t, results, read)
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeResults(&buf, nil))
	require.Equal(t, "duration,write_percentage,transaction_size,transaction_count\n", buf.String())

	read, err := DecodeResults(&buf)
	require.NoError(t, err)
	require.Empty(t, read)
}

func TestWriteResultsError(t *testing.T) {
	err := WriteResults(filepath.Join(t.TempDir(), "missing", "sweep.csv"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeResultsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"a,b,c,d\n",
		"duration,write_percentage,transaction_size,transaction_count\n1,2,3\n",
		"duration,write_percentage,transaction_size,transaction_count\nx,2,3,4\n",
		"duration,write_percentage,transaction_size,transaction_count\n1,2,-3,4\n",
	} {
		_, err := DecodeResults(strings.NewReader(in))
		require.ErrorIs(t, err, ErrMalformedFile, "input %q", in)
	}
}

func TestTraceWriter(t *testing.T) {
	path := TracePath(t.TempDir(), "sweep")
	require.True(t, strings.HasSuffix(path, "sweep_cpu_stats.csv"))
	require.Equal(t, "sweep_cpu_stats.csv", TracePath("", "sweep"))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = NewTraceWriter(f, nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	tw, err := NewTraceWriter(f, CoreNames(2))
	require.NoError(t, err)
	require.Equal(t, 2, tw.Columns())

	// the header reaches the file before any row is written
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cpu0,cpu1\n", string(b))

	require.NoError(t, tw.WriteRow([]float64{12.5, 0}))
	require.NoError(t, tw.WriteRow([]float64{100, 33.25}))
	require.ErrorIs(t, tw.WriteRow([]float64{1}), ErrIllegalArguments)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cpu0,cpu1\n12.5,0\n100,33.25\n", string(b))

	header, rows, err := ReadTrace(path)
	require.NoError(t, err)
	require.Equal(t, []string{"cpu0", "cpu1"}, header)
	require.Equal(t, [][]float64{{12.5, 0}, {100, 33.25}}, rows)

	require.Equal(t, []float64{56.25, 16.625}, MeanUtilization(2, rows))
	require.Equal(t, []float64{0, 0, 0}, MeanUtilization(3, nil))
}

func TestReadTraceMalformed(t *testing.T) {
	dir := t.TempDir()

	_, _, err := ReadTrace(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, _, err = ReadTrace(empty)
	require.ErrorIs(t, err, ErrMalformedFile)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("cpu0\nnope\n"), 0644))
	_, _, err = ReadTrace(bad)
	require.ErrorIs(t, err, ErrMalformedFile)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer

	PrintSummary(&buf,
		[]Result{{DurationMs: 42, WritePercentage: 30, TransactionSize: 1000, TransactionCount: 10}},
		[]string{"cpu0"},
		[][]float64{{10}, {20}},
	)

	out := buf.String()
	require.Contains(t, out, "write_percentage")
	require.Contains(t, out, "42")
	require.Contains(t, out, "2 cpu samples")
	require.Contains(t, out, "15.00")

	buf.Reset()
	PrintSummary(&buf, nil, nil, nil)
	require.NotContains(t, buf.String(), "cpu samples")
}
