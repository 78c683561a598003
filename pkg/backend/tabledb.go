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
	"os"
	"path/filepath"

	"github.com/codenotary/txbench/embedded/tabledb"
	"github.com/codenotary/txbench/pkg/workload"
)

const benchTable = "bench"

func toTableTx(tx *workload.Transaction) *tabledb.Tx {
	ttx := tabledb.NewTx()

	for _, op := range tx.Operations() {
		if op.Kind == workload.OpSet {
			ttx.Set(op.Key, op.Value)
		} else {
			ttx.Get(op.Key)
		}
	}

	return ttx
}

func baselineTable(db *tabledb.Database, baseline []string) error {
	tx := tabledb.NewTx()
	for i, k := range baseline {
		tx.Set(k, i)
	}

	_, err := db.EmptyTable(benchTable).Execute(tx)
	return err
}

// noBackupEngine executes transactions on an in-memory table
type noBackupEngine struct {
	table *tabledb.Table
}

func newNoBackupEngine(_ *Options) (Engine, error) {
	return &noBackupEngine{}, nil
}

func (e *noBackupEngine) Setup(_ context.Context, baseline []string) error {
	db := tabledb.NewDatabase()

	err := baselineTable(db, baseline)
	if err != nil {
		return err
	}

	e.table, err = db.GetTable(benchTable)
	return err
}

func (e *noBackupEngine) Execute(_ context.Context, tx *workload.Transaction) error {
	_, err := e.table.Execute(toTableTx(tx))
	return err
}

func (e *noBackupEngine) Teardown() error {
	e.table = nil
	return nil
}

// fileBackupEngine restores the database from its backup file before every
// transaction and backs it up again right after
type fileBackupEngine struct {
	tempDir string
	dir     string
	path    string
}

func newFileBackupEngine(opts *Options) (Engine, error) {
	return &fileBackupEngine{tempDir: opts.TempDir}, nil
}

func (e *fileBackupEngine) Setup(_ context.Context, baseline []string) error {
	dir, err := os.MkdirTemp(e.tempDir, "txbench-")
	if err != nil {
		return err
	}

	e.dir = dir
	e.path = filepath.Join(dir, "backup")

	db := tabledb.NewDatabase()

	err = baselineTable(db, baseline)
	if err != nil {
		return err
	}

	return db.Backup(e.path)
}

func (e *fileBackupEngine) Execute(_ context.Context, tx *workload.Transaction) error {
	db, err := tabledb.Restore(e.path)
	if err != nil {
		return err
	}

	table, err := db.GetTable(benchTable)
	if err != nil {
		return err
	}

	_, err = table.Execute(toTableTx(tx))
	if err != nil {
		return err
	}

	return db.Backup(e.path)
}

func (e *fileBackupEngine) Teardown() error {
	if e.dir == "" {
		return nil
	}

	err := os.RemoveAll(e.dir)
	e.dir = ""

	return err
}
