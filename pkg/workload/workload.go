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

// Package workload builds synthetic transactional key/value workloads made of
// Get and Set operations.
package workload

import (
	"errors"
	"fmt"
)

var ErrIllegalArguments = errors.New("illegal arguments")

// OpKind tags an Operation as a read or a write
type OpKind uint8

const (
	OpGet OpKind = iota
	OpSet
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Operation is a single Get(key) or Set(key, value)
type Operation struct {
	Kind  OpKind
	Key   string
	Value int
}

// Transaction is an ordered batch of operations executed atomically by a backend
type Transaction struct {
	ops []Operation
}

// NewTransaction returns an empty transaction with room for size operations
func NewTransaction(size int) *Transaction {
	return &Transaction{ops: make([]Operation, 0, size)}
}

// Get appends a read of key
func (tx *Transaction) Get(key string) {
	tx.ops = append(tx.ops, Operation{Kind: OpGet, Key: key})
}

// Set appends a write of value under key
func (tx *Transaction) Set(key string, value int) {
	tx.ops = append(tx.ops, Operation{Kind: OpSet, Key: key, Value: value})
}

// Operations returns the operations in insertion order
func (tx *Transaction) Operations() []Operation {
	return tx.ops
}

func (tx *Transaction) Len() int {
	return len(tx.ops)
}

// Params are the knobs of a single benchmark point
type Params struct {
	WritePercentage  int
	TransactionSize  uint64
	TransactionCount uint64
}

// Validate checks the caller supplied values. A write percentage outside
// [0, 100] is reported here so that the configuration layer can reject it
// before the generator panics on it.
func (p Params) Validate() error {
	if p.WritePercentage < 0 || p.WritePercentage > 100 {
		return fmt.Errorf("%w: write percentage %d is outside [0, 100]", ErrIllegalArguments, p.WritePercentage)
	}
	if p.TransactionSize == 0 || p.TransactionCount == 0 {
		return fmt.Errorf("%w: transaction size and count must be positive", ErrIllegalArguments)
	}
	return nil
}

// TotalOperations is TransactionSize x TransactionCount
func (p Params) TotalOperations() uint64 {
	return p.TransactionSize * p.TransactionCount
}

func (p Params) String() string {
	return fmt.Sprintf("write=%d%% size=%d count=%d", p.WritePercentage, p.TransactionSize, p.TransactionCount)
}

// Workload is a fully materialized sequence of transactions
type Workload struct {
	Params       Params
	Transactions []*Transaction

	// BaselineKeys must exist in the backend before the workload runs,
	// every Get of the workload reads one of them.
	BaselineKeys []string
}

// Stats counts operations by kind
func (w *Workload) Stats() (gets, sets uint64) {
	for _, tx := range w.Transactions {
		for _, op := range tx.ops {
			if op.Kind == OpSet {
				sets++
			} else {
				gets++
			}
		}
	}
	return gets, sets
}
