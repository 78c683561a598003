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

package workload

import (
	"fmt"
	"strconv"
)

const DefaultBaselineKeys = 1_000

// Config controls workload generation
type Config struct {
	// Seed of the read/write decisions
	Seed int64

	// BaselineKeys is the size of the rotating pool of keys read by Get operations
	BaselineKeys int
}

func DefaultConfig() Config {
	return Config{
		BaselineKeys: DefaultBaselineKeys,
	}
}

// Generator builds workloads. Successive Build calls continue the same
// random sequence, so a sweep driven by one Generator is reproducible
// from its seed.
type Generator struct {
	cfg     Config
	decider *Decider
}

func NewGenerator(cfg Config) *Generator {
	if cfg.BaselineKeys <= 0 {
		cfg.BaselineKeys = 1
	}

	return &Generator{
		cfg:     cfg,
		decider: NewDecider(cfg.Seed),
	}
}

// BaselineKey returns the n-th key of the pre-populated pool
func BaselineKey(n int) string {
	return fmt.Sprintf("base:%d", n)
}

// WriteKey returns the key written by the slot-th operation of the
// tx-th transaction: both indexes concatenated in decimal.
func WriteKey(tx, slot uint64) string {
	return strconv.FormatUint(tx, 10) + strconv.FormatUint(slot, 10)
}

// Build materializes TransactionCount transactions of TransactionSize
// operations each. It panics if p.WritePercentage is outside [0, 100].
func (g *Generator) Build(p Params) *Workload {
	checkPercentage(float64(p.WritePercentage))

	w := &Workload{
		Params:       p,
		Transactions: make([]*Transaction, 0, p.TransactionCount),
		BaselineKeys: make([]string, g.cfg.BaselineKeys),
	}

	for i := range w.BaselineKeys {
		w.BaselineKeys[i] = BaselineKey(i)
	}

	next := 0

	for i := uint64(0); i < p.TransactionCount; i++ {
		tx := NewTransaction(int(p.TransactionSize))

		for j := uint64(0); j < p.TransactionSize; j++ {
			if g.decider.Decide(float64(p.WritePercentage)) {
				tx.Set(WriteKey(i, j), int(j))
				continue
			}

			tx.Get(w.BaselineKeys[next])
			next = (next + 1) % len(w.BaselineKeys)
		}

		w.Transactions = append(w.Transactions, tx)
	}

	return w
}
