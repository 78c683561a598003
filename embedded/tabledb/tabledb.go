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

// Package tabledb is a small in-memory database of named string->int tables
// with atomic multi-operation transactions and whole-database backups.
package tabledb

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrTableNotFound    = errors.New("table not found")
	ErrKeyNotFound      = errors.New("key not found")
	ErrCorruptedBackup  = errors.New("corrupted backup")
)

type Database struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// EmptyTable creates the named table, replacing any existing one
func (db *Database) EmptyTable(name string) *Table {
	t := newTable(name)

	db.mu.Lock()
	defer db.mu.Unlock()

	db.tables[name] = t

	return t
}

func (db *Database) GetTable(name string) (*Table, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrTableNotFound, name)
	}

	return t, nil
}

// TableNames returns the table names in lexicographic order
func (db *Database) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

type Table struct {
	name string

	mu   sync.RWMutex
	data map[string]int
}

func newTable(name string) *Table {
	return &Table{name: name, data: make(map[string]int)}
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.data)
}

func (t *Table) Get(key string) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.data[key]
	if !ok {
		return 0, fmt.Errorf("%w: '%s' in table '%s'", ErrKeyNotFound, key, t.name)
	}

	return v, nil
}

type opKind uint8

const (
	opGet opKind = iota
	opSet
)

type txOp struct {
	kind  opKind
	key   string
	value int
}

// Tx is a batch of reads and writes applied to a table all at once
type Tx struct {
	ops []txOp
}

func NewTx() *Tx {
	return &Tx{}
}

func (tx *Tx) Get(key string) {
	tx.ops = append(tx.ops, txOp{kind: opGet, key: key})
}

func (tx *Tx) Set(key string, value int) {
	tx.ops = append(tx.ops, txOp{kind: opSet, key: key, value: value})
}

func (tx *Tx) Len() int {
	return len(tx.ops)
}

// Execute applies tx atomically and returns the values read by its Get
// operations, in order. Reads observe earlier writes of the same
// transaction. If any read misses, nothing is applied.
func (t *Table) Execute(tx *Tx) ([]int, error) {
	if tx == nil {
		return nil, ErrIllegalArguments
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var reads []int
	pending := make(map[string]int)

	for _, op := range tx.ops {
		if op.kind == opSet {
			pending[op.key] = op.value
			continue
		}

		v, ok := pending[op.key]
		if !ok {
			v, ok = t.data[op.key]
		}
		if !ok {
			return nil, fmt.Errorf("%w: '%s' in table '%s'", ErrKeyNotFound, op.key, t.name)
		}

		reads = append(reads, v)
	}

	for k, v := range pending {
		t.data[k] = v
	}

	return reads, nil
}
