/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// PrintSummary renders the sweep results and, when a trace header is given,
// the mean utilization of every core over the whole trace.
func PrintSummary(w io.Writer, results []Result, traceHeader []string, traceRows [][]float64) {
	resultsTable := tablewriter.NewWriter(w)
	resultsTable.SetHeader(append([]string{"#"}, ResultsHeader...))

	for i, r := range results {
		resultsTable.Append(append([]string{strconv.Itoa(i)}, r.record()...))
	}

	resultsTable.SetAutoFormatHeaders(false)
	resultsTable.Render()

	if len(traceHeader) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%d cpu samples\n", len(traceRows))

	cpuTable := tablewriter.NewWriter(w)
	cpuTable.SetHeader([]string{"core", "mean utilization %"})

	for i, m := range MeanUtilization(len(traceHeader), traceRows) {
		cpuTable.Append([]string{traceHeader[i], strconv.FormatFloat(m, 'f', 2, 64)})
	}

	cpuTable.SetAutoFormatHeaders(false)
	cpuTable.Render()
}
