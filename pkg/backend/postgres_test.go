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
	"testing"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TXBENCH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TXBENCH_TEST_POSTGRES_DSN not set")
	}

	b, err := Lookup("postgres", DefaultOptions().
		WithPostgresDSN(dsn).
		WithLogger(logger.NewMemoryLogger()))
	require.NoError(t, err)

	sig := &stubSignaler{}

	_, err = b.Run(context.Background(),
		workload.Params{WritePercentage: 50, TransactionSize: 10, TransactionCount: 10},
		testGenerator(),
		sig,
	)
	require.NoError(t, err)
	require.Equal(t, []string{"start", "stop"}, sig.events)
}

func TestPostgresUnknownKey(t *testing.T) {
	dsn := os.Getenv("TXBENCH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TXBENCH_TEST_POSTGRES_DSN not set")
	}

	eng, err := newPostgresEngine(DefaultOptions().WithPostgresDSN(dsn))
	require.NoError(t, err)

	require.NoError(t, eng.Setup(context.Background(), []string{"present"}))
	defer eng.Teardown()

	tx := workload.NewTransaction(2)
	tx.Get("present")
	tx.Get("missing")

	err = eng.Execute(context.Background(), tx)
	require.ErrorIs(t, err, ErrKeyNotFound)
}
