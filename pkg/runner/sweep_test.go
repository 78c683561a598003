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

package runner

import (
	"testing"

	"github.com/codenotary/txbench/pkg/workload"
	"github.com/stretchr/testify/require"
)

func TestPercentageSweep(t *testing.T) {
	points := PercentageSweep(1_000, 50)
	require.Len(t, points, 10)

	for i, p := range points {
		require.Equal(t, 10*i, p.WritePercentage)
		require.EqualValues(t, 1_000, p.TransactionSize)
		require.EqualValues(t, 50, p.TransactionCount)
	}

	require.Equal(t, points, PercentageSweep(1_000, 50))
	require.NoError(t, ValidatePoints(points))
}

func TestShapeSweep(t *testing.T) {
	points, err := ShapeSweep(30, 7)
	require.NoError(t, err)
	require.Len(t, points, 4)

	size := uint64(100)
	for _, p := range points {
		require.Equal(t, 30, p.WritePercentage)
		require.Equal(t, size, p.TransactionSize)
		require.EqualValues(t, 10_000_000, p.TransactionSize*p.TransactionCount)
		size *= 10
	}

	require.EqualValues(t, 100_000, points[0].TransactionCount)
	require.EqualValues(t, 100_000, points[3].TransactionSize)
	require.EqualValues(t, 100, points[3].TransactionCount)

	points, err = ShapeSweep(0, 4)
	require.NoError(t, err)
	require.Equal(t, []workload.Params{{WritePercentage: 0, TransactionSize: 100, TransactionCount: 100}}, points)

	for power := MinShapePower; power <= MaxShapePower; power++ {
		points, err := ShapeSweep(10, power)
		require.NoError(t, err)
		require.Len(t, points, power-3)

		for _, p := range points {
			require.GreaterOrEqual(t, p.TransactionSize, uint64(100))
			require.GreaterOrEqual(t, p.TransactionCount, uint64(100))
		}
	}
}

func TestShapeSweepErrors(t *testing.T) {
	_, err := ShapeSweep(10, 3)
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = ShapeSweep(10, 20)
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = ShapeSweep(101, 5)
	require.ErrorIs(t, err, workload.ErrIllegalArguments)

	points, err := ShapeSweep(100, MaxShapePower)
	require.NoError(t, err)
	require.EqualValues(t, uint64(10_000_000_000_000_000_000), points[0].TransactionSize*points[0].TransactionCount)
}

func TestValidatePoints(t *testing.T) {
	require.ErrorIs(t, ValidatePoints(nil), ErrIllegalArguments)

	err := ValidatePoints([]workload.Params{
		{WritePercentage: 10, TransactionSize: 1, TransactionCount: 1},
		{WritePercentage: 10, TransactionSize: 0, TransactionCount: 1},
	})
	require.ErrorIs(t, err, workload.ErrIllegalArguments)
	require.Contains(t, err.Error(), "point 1")
}
