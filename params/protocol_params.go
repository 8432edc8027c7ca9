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

package params

// Protocol-level constants the interpreter and precompile registry consult.
// Gas numbers are carried over from go-ethereum's protocol_params.go so the
// still-present constantGas/dynamicGas machinery produces the same relative
// costs it always has; the engine does not enforce a gas budget derived from
// them (see internal/vm/gas.go).
const (
	MaxCodeSize     = 24576 // EIP-170
	MaxInitCodeSize = 2 * MaxCodeSize // EIP-3860

	CallCreateDepth = 1024 // Maximum depth of call/create stack

	// EIP-2929: gas cost increases for state access opcodes
	ColdAccountAccessCostEIP2929 = 2600
	ColdSloadCostEIP2929         = 2100
	WarmStorageReadCostEIP2929   = 100

	CopyGas = 3 // Per-word cost for memory-copying opcodes (CODECOPY, MCOPY, ...)

	Sha3Gas     = 30 // Once per SHA3 operation
	Sha3WordGas = 6  // Once per word of the SHA3 operation's data

	LogGas      = 375 // Per LOG* operation
	LogTopicGas = 375 // Multiplied by the number of topics for LOG*
	LogDataGas  = 8   // Per byte in a LOG* operation's data

	CreateGas     = 32000 // Once per CREATE operation and contract-creation transaction
	CreateDataGas = 200   // Per byte of code deployed by CREATE/CREATE2

	JumpdestGas = 1 // Once per JUMPDEST operation

	SstoreSetGas    = 20000 // Once per SSTORE operation setting a zero slot to non-zero
	SstoreResetGas  = 5000  // Once per SSTORE operation resetting a non-zero slot
	SstoreClearRefund = 4800 // Refund for clearing a non-zero slot to zero (EIP-3529)

	SelfdestructRefundGas = 24000 // Refund for SELFDESTRUCT, removed post-London but kept for older forks

	// BlobTxPointEvaluationPrecompileGas is the fixed cost of the EIP-4844
	// point evaluation precompile (address 0x0a).
	BlobTxPointEvaluationPrecompileGas = 50000
)

// BlobTxBlobGasPerBlob and friends live in common/transaction/blob.go since
// they describe the transaction envelope rather than interpreter gas
// accounting; this file only holds constants the VM package itself needs.
