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

package backend

import (
	"context"
	"fmt"

	"github.com/codenotary/txbench/pkg/workload"
)

// hashMapEngine applies operations straight to a Go map. It is the lower
// bound every other engine is compared with.
type hashMapEngine struct {
	m map[string]int
}

func newHashMapEngine(_ *Options) (Engine, error) {
	return &hashMapEngine{}, nil
}

func (e *hashMapEngine) Setup(_ context.Context, baseline []string) error {
	e.m = make(map[string]int, len(baseline))

	for i, k := range baseline {
		e.m[k] = i
	}

	return nil
}

func (e *hashMapEngine) Execute(_ context.Context, tx *workload.Transaction) error {
	for _, op := range tx.Operations() {
		if op.Kind == workload.OpSet {
			e.m[op.Key] = op.Value
			continue
		}

		if _, ok := e.m[op.Key]; !ok {
			return fmt.Errorf("%w: '%s'", ErrKeyNotFound, op.Key)
		}
	}

	return nil
}

func (e *hashMapEngine) Teardown() error {
	e.m = nil
	return nil
}
