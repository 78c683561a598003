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

package sampler

import (
	"github.com/prometheus/procfs"
)

// CoreTimes holds the cumulative time, in seconds, a core spent busy and in total
type CoreTimes struct {
	Busy  float64
	Total float64
}

// CoreStatsReader snapshots the cumulative counters of every core.
// Snapshots taken by the same reader always list cores in the same order.
type CoreStatsReader interface {
	ReadCores() ([]CoreTimes, error)
}

// ProcStatReader reads per-core counters from /proc/stat
type ProcStatReader struct {
	fs procfs.FS
}

func NewProcStatReader(mountPoint string) (*ProcStatReader, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, err
	}

	return &ProcStatReader{fs: fs}, nil
}

func (r *ProcStatReader) ReadCores() ([]CoreTimes, error) {
	st, err := r.fs.Stat()
	if err != nil {
		return nil, err
	}

	cores := make([]CoreTimes, len(st.CPU))
	for i, c := range st.CPU {
		cores[i] = coreTimes(c)
	}

	return cores, nil
}

// guest time is already accounted in user time
func coreTimes(c procfs.CPUStat) CoreTimes {
	busy := c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal
	return CoreTimes{
		Busy:  busy,
		Total: busy + c.Idle + c.Iowait,
	}
}

// Utilization returns the busy percentage of every core between two
// snapshots. Cores missing from either snapshot report 0.
func Utilization(prev, cur []CoreTimes, cores int) []float64 {
	row := make([]float64, cores)

	for i := 0; i < cores && i < len(prev) && i < len(cur); i++ {
		total := cur[i].Total - prev[i].Total
		if total <= 0 {
			continue
		}

		u := 100 * (cur[i].Busy - prev[i].Busy) / total
		switch {
		case u < 0:
			u = 0
		case u > 100:
			u = 100
		}

		row[i] = u
	}

	return row
}
