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

import "math/big"

// ChainConfig describes the fork schedule of a chain by activation block
// number. Only the forks relevant to opcode/precompile availability up to
// Cancun are modeled; PectraTime and OsakaTime only set their own Rules
// flags (see ChainConfig.Rules).
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock      *big.Int
	TangerineWhistleBlock *big.Int
	SpuriousDragonBlock *big.Int
	ByzantiumBlock      *big.Int
	ConstantinopleBlock *big.Int
	PetersburgBlock     *big.Int
	IstanbulBlock       *big.Int
	BerlinBlock         *big.Int
	LondonBlock         *big.Int

	ShanghaiTime *uint64
	CancunTime   *uint64
	PectraTime   *uint64
	OsakaTime    *uint64
}

// CancunChainConfig is the default configuration this engine targets: every
// fork up to and including Cancun active from genesis, matching the
// specification's single target revision.
var CancunChainConfig = &ChainConfig{
	ChainID:               big.NewInt(1),
	HomesteadBlock:        big.NewInt(0),
	TangerineWhistleBlock: big.NewInt(0),
	SpuriousDragonBlock:   big.NewInt(0),
	ByzantiumBlock:        big.NewInt(0),
	ConstantinopleBlock:   big.NewInt(0),
	PetersburgBlock:       big.NewInt(0),
	IstanbulBlock:         big.NewInt(0),
	BerlinBlock:           big.NewInt(0),
	LondonBlock:           big.NewInt(0),
	ShanghaiTime:          newUint64(0),
	CancunTime:            newUint64(0),
}

func newUint64(v uint64) *uint64 { return &v }

func isActiveBlock(b *big.Int, num uint64) bool {
	return b != nil && big.NewInt(0).SetUint64(num).Cmp(b) >= 0
}

func isActiveTime(t *uint64, timestamp uint64) bool {
	return t != nil && timestamp >= *t
}

// Rules returns the fork flags active at the given block number/timestamp.
// It is the ChainConfig analogue of go-ethereum's Rules() method: a cheap,
// comparison-free snapshot the interpreter consults once per call frame.
func (c *ChainConfig) Rules(blockNumber uint64, timestamp uint64) Rules {
	return Rules{
		ChainID:            c.ChainID,
		IsHomestead:        isActiveBlock(c.HomesteadBlock, blockNumber),
		IsTangerineWhistle: isActiveBlock(c.TangerineWhistleBlock, blockNumber),
		IsSpuriousDragon:   isActiveBlock(c.SpuriousDragonBlock, blockNumber),
		IsByzantium:        isActiveBlock(c.ByzantiumBlock, blockNumber),
		IsConstantinople:   isActiveBlock(c.ConstantinopleBlock, blockNumber),
		IsPetersburg:       isActiveBlock(c.PetersburgBlock, blockNumber),
		IsIstanbul:         isActiveBlock(c.IstanbulBlock, blockNumber),
		IsBerlin:           isActiveBlock(c.BerlinBlock, blockNumber),
		IsLondon:           isActiveBlock(c.LondonBlock, blockNumber),
		IsShanghai:         isActiveTime(c.ShanghaiTime, timestamp),
		IsCancun:           isActiveTime(c.CancunTime, timestamp),
		IsPrague:           isActiveTime(c.PectraTime, timestamp),
		IsPectra:           isActiveTime(c.PectraTime, timestamp),
		IsOsaka:            isActiveTime(c.OsakaTime, timestamp),
	}
}
