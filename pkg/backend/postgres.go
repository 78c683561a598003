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
	"errors"
	"fmt"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/jackc/pgx/v4"
	"github.com/rs/xid"
)

// postgresEngine runs every workload transaction as one SQL transaction on
// a table created for the measured point and dropped afterwards
type postgresEngine struct {
	dsn string
	log logger.Logger

	conn  *pgx.Conn
	table string

	upsertSQL string
	selectSQL string
}

func newPostgresEngine(opts *Options) (Engine, error) {
	if opts.PostgresDSN == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", ErrIllegalArguments)
	}

	return &postgresEngine{dsn: opts.PostgresDSN, log: opts.Logger}, nil
}

func (e *postgresEngine) Setup(ctx context.Context, baseline []string) error {
	conn, err := pgx.Connect(ctx, e.dsn)
	if err != nil {
		return err
	}

	e.conn = conn
	e.table = "txbench_" + xid.New().String()

	ident := pgx.Identifier{e.table}.Sanitize()

	e.upsertSQL = fmt.Sprintf("INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value", ident)
	e.selectSQL = fmt.Sprintf("SELECT value FROM %s WHERE key = $1", ident)

	_, err = conn.Exec(ctx, fmt.Sprintf("CREATE TABLE %s (key TEXT PRIMARY KEY, value BIGINT NOT NULL)", ident))
	if err != nil {
		return err
	}

	rows := make([][]interface{}, len(baseline))
	for i, k := range baseline {
		rows[i] = []interface{}{k, int64(i)}
	}

	_, err = conn.CopyFrom(ctx, pgx.Identifier{e.table}, []string{"key", "value"}, pgx.CopyFromRows(rows))
	if err != nil {
		return err
	}

	e.log.Debugf("postgres: table '%s' seeded with %d keys", e.table, len(baseline))

	return nil
}

func (e *postgresEngine) Execute(ctx context.Context, tx *workload.Transaction) error {
	sqlTx, err := e.conn.Begin(ctx)
	if err != nil {
		return err
	}

	for _, op := range tx.Operations() {
		if op.Kind == workload.OpSet {
			_, err = sqlTx.Exec(ctx, e.upsertSQL, op.Key, int64(op.Value))
		} else {
			var v int64
			err = sqlTx.QueryRow(ctx, e.selectSQL, op.Key).Scan(&v)
			if errors.Is(err, pgx.ErrNoRows) {
				err = fmt.Errorf("%w: '%s'", ErrKeyNotFound, op.Key)
			}
		}

		if err != nil {
			sqlTx.Rollback(ctx)
			return err
		}
	}

	return sqlTx.Commit(ctx)
}

func (e *postgresEngine) Teardown() error {
	if e.conn == nil {
		return nil
	}

	ctx := context.Background()

	_, err := e.conn.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{e.table}.Sanitize())

	if cerr := e.conn.Close(ctx); err == nil {
		err = cerr
	}

	e.conn = nil

	return err
}
