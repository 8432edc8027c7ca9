// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package conf

import "time"

// DevConfig holds knobs for exercising the engine against synthetic
// workloads during development, independent of any real host integration.
type DevConfig struct {
	TxGenEnabled    bool
	TxGenMaxPerBlock int
	TxGenInterval   time.Duration
	TxGenGasPrice   int64
}

// DefaultDevConfig returns the generator disabled.
func DefaultDevConfig() DevConfig {
	return DevConfig{
		TxGenEnabled:    false,
		TxGenMaxPerBlock: 100,
		TxGenInterval:   time.Second,
		TxGenGasPrice:   1_000_000_000,
	}
}
