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

// NodeConfig is the host-process configuration the engine's logger reads
// its log directory from. A full node's NodeConfig also carries RPC
// listener, miner and networking settings; none of that belongs to an
// execution engine embedded as a library, so only the field the logger
// needs survives here.
type NodeConfig struct {
	// DataDir is the host's working directory; the logger creates a "log"
	// subdirectory under it when file logging is enabled.
	DataDir string
}
