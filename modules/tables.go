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

// Package modules names the persistent key-value tables (erigon-lib buckets)
// shared by the rawdb and state packages. Table layout is otherwise opaque
// to this engine: no schema beyond "kind, key -> value" is assumed.
package modules

const (
	// AccountInfo holds RLP-encoded account records, keyed by address.
	AccountInfo = "AccountInfo"

	// AccountStorage holds storage slots, keyed by address||incarnation||slot.
	AccountStorage = "AccountStorage"

	// Code holds contract bytecode, keyed by code hash.
	Code = "Code"

	// DatabaseInfo stores small engine metadata (schema/version markers).
	DatabaseInfo = "DatabaseInfo"
)
