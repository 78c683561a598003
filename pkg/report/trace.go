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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// TracePath returns the CPU trace file of the named sweep inside dir
func TracePath(dir, name string) string {
	return joinPath(dir, name+"_cpu_stats.csv")
}

func joinPath(dir, file string) string {
	if dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// CoreNames returns the trace header for n cores: cpu0, cpu1...
func CoreNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "cpu" + strconv.Itoa(i)
	}
	return names
}

// TraceWriter appends per-core utilization rows to a CPU trace.
// Every row is flushed to the underlying writer as soon as it is written.
type TraceWriter struct {
	cw      *csv.Writer
	columns int
}

// NewTraceWriter writes the header and returns a writer for the rows
func NewTraceWriter(w io.Writer, header []string) (*TraceWriter, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty trace header", ErrIllegalArguments)
	}

	tw := &TraceWriter{
		cw:      csv.NewWriter(w),
		columns: len(header),
	}

	if err := tw.cw.Write(header); err != nil {
		return nil, err
	}
	tw.cw.Flush()

	if err := tw.cw.Error(); err != nil {
		return nil, err
	}

	return tw, nil
}

func (tw *TraceWriter) Columns() int {
	return tw.columns
}

func (tw *TraceWriter) WriteRow(row []float64) error {
	if len(row) != tw.columns {
		return fmt.Errorf("%w: trace row has %d values, expected %d", ErrIllegalArguments, len(row), tw.columns)
	}

	rec := make([]string, len(row))
	for i, v := range row {
		rec[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	if err := tw.cw.Write(rec); err != nil {
		return err
	}
	tw.cw.Flush()

	return tw.cw.Error()
}

// ReadTrace parses a CPU trace into its header and rows
func ReadTrace(path string) (header []string, rows [][]float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: missing trace header", ErrMalformedFile)
	}

	header = records[0]
	rows = make([][]float64, 0, len(records)-1)

	for i, rec := range records[1:] {
		row := make([]float64, len(rec))

		for j, s := range rec {
			row[j], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", ErrMalformedFile, i+2, err)
			}
		}

		rows = append(rows, row)
	}

	return header, rows, nil
}

// MeanUtilization averages every column of the trace
func MeanUtilization(columns int, rows [][]float64) []float64 {
	means := make([]float64, columns)
	if len(rows) == 0 {
		return means
	}

	for _, row := range rows {
		for i := 0; i < columns && i < len(row); i++ {
			means[i] += row[i]
		}
	}

	for i := range means {
		means[i] /= float64(len(rows))
	}

	return means
}
