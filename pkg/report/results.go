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

// Package report reads and writes the delimited files produced by a sweep.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrMalformedFile    = errors.New("malformed file")
)

// ResultsHeader is the first line of every results file
var ResultsHeader = []string{"duration", "write_percentage", "transaction_size", "transaction_count"}

// Result is the outcome of one sweep point. DurationMs is the wall-clock
// time of the measured window, truncated to whole milliseconds.
type Result struct {
	DurationMs       uint64
	WritePercentage  int
	TransactionSize  uint64
	TransactionCount uint64
}

func (r Result) record() []string {
	return []string{
		strconv.FormatUint(r.DurationMs, 10),
		strconv.Itoa(r.WritePercentage),
		strconv.FormatUint(r.TransactionSize, 10),
		strconv.FormatUint(r.TransactionCount, 10),
	}
}

// ResultsPath returns the results file of the named sweep inside dir
func ResultsPath(dir, name string) string {
	return joinPath(dir, name+".csv")
}

// WriteResults writes results to path in order, replacing any existing file
func WriteResults(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = EncodeResults(f, results)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("writing results to '%s': %w", path, err)
	}

	return nil
}

func EncodeResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ResultsHeader); err != nil {
		return err
	}

	for _, r := range results {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func ReadResults(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeResults(f)
}

func DecodeResults(r io.Reader) ([]Result, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	if len(records) == 0 || !equalRecords(records[0], ResultsHeader) {
		return nil, fmt.Errorf("%w: missing results header", ErrMalformedFile)
	}

	results := make([]Result, 0, len(records)-1)

	for i, rec := range records[1:] {
		res, err := parseResult(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedFile, i+2, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func parseResult(rec []string) (res Result, err error) {
	if len(rec) != len(ResultsHeader) {
		return res, fmt.Errorf("expected %d fields, got %d", len(ResultsHeader), len(rec))
	}

	res.DurationMs, err = strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return
	}

	res.WritePercentage, err = strconv.Atoi(rec[1])
	if err != nil {
		return
	}

	res.TransactionSize, err = strconv.ParseUint(rec[2], 10, 64)
	if err != nil {
		return
	}

	res.TransactionCount, err = strconv.ParseUint(rec[3], 10, 64)
	return
}

func equalRecords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
