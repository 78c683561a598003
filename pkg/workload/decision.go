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

package workload

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Decider returns true with a given percentage probability.
// A Decider is not safe for concurrent use.
type Decider struct {
	rnd *rand.Rand
}

// NewDecider returns a Decider whose draws are fully determined by seed
func NewDecider(seed int64) *Decider {
	return &Decider{rnd: rand.New(rand.NewSource(seed))}
}

// Decide draws a value uniformly from [0, 100) and reports whether it is
// strictly below percentage. It panics if percentage is outside [0, 100].
func (d *Decider) Decide(percentage float64) bool {
	checkPercentage(percentage)
	return d.rnd.Float64()*100 < percentage
}

var (
	globalMu      sync.Mutex
	globalDecider = NewDecider(time.Now().UnixNano())
)

// WithPercentageTrue is Decide on a process-wide, time seeded source
func WithPercentageTrue(percentage float64) bool {
	globalMu.Lock()
	defer globalMu.Unlock()

	return globalDecider.Decide(percentage)
}

func checkPercentage(percentage float64) {
	// NaN fails both comparisons
	if !(percentage >= 0 && percentage <= 100) {
		panic(fmt.Sprintf("percentage must be between 0 and 100, got %v", percentage))
	}
}
