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
	"errors"
	"fmt"

	"github.com/codenotary/txbench/pkg/workload"
)

var ErrIllegalArguments = errors.New("illegal arguments")

const (
	MinShapePower = 4
	MaxShapePower = 19
)

// PercentageSweep keeps the workload shape fixed and raises the write
// percentage from 0 to 90 in steps of 10
func PercentageSweep(size, count uint64) []workload.Params {
	points := make([]workload.Params, 0, 10)

	for pct := 0; pct < 100; pct += 10 {
		points = append(points, workload.Params{
			WritePercentage:  pct,
			TransactionSize:  size,
			TransactionCount: count,
		})
	}

	return points
}

// ShapeSweep keeps the total number of operations at 10^power and trades
// transaction count for transaction size: for i in [2, power-2] the point
// runs 10^(power-i) transactions of 10^i operations each, so neither side
// drops below 100.
func ShapeSweep(writePercentage int, power int) ([]workload.Params, error) {
	if power < MinShapePower || power > MaxShapePower {
		return nil, fmt.Errorf("%w: shape sweep power must be in [%d, %d], got %d",
			ErrIllegalArguments, MinShapePower, MaxShapePower, power)
	}

	points := make([]workload.Params, 0, power-3)

	for i := 2; i <= power-2; i++ {
		points = append(points, workload.Params{
			WritePercentage:  writePercentage,
			TransactionSize:  pow10(i),
			TransactionCount: pow10(power - i),
		})
	}

	return points, ValidatePoints(points)
}

func ValidatePoints(points []workload.Params) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: no points to run", ErrIllegalArguments)
	}

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}

	return nil
}

func pow10(n int) uint64 {
	v := uint64(1)
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}
