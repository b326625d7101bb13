// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"
)

var (
	// mainNetPowLimit is the highest proof of work value a block can have
	// for the main network.  It is the value 2^236 - 1, shared by all
	// mining algorithms.
	mainNetPowLimit            = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)
	mainNetPowLimitBits uint32 = 0x1e0fffff // target=000fffff00000000000000000000000000000000000000000000000000000000
)

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:             "mainnet",
	Net:              MainNet,
	DefaultPort:      "10333",
	CoinbaseMaturity: 100,

	PowParams: PowParams{
		PowLimit:          mainNetPowLimit,
		PowLimitBits:      mainNetPowLimitBits,
		PowTargetSpacing:  time.Minute,
		AveragingInterval: 10,

		// The combined window is AveragingInterval blocks per algorithm
		// across all six algorithms: 10 * 6 * 1m.
		AveragingTargetTimespan: time.Hour,

		// 8% max adjust up, 16% max adjust down per retarget.
		MinActualTimespan: time.Second * 3312, // 1h * (100 - 8) / 100
		MaxActualTimespan: time.Second * 4176, // 1h * (100 + 16) / 100

		LocalTargetAdjustment: 4, // 4% per per-algo correction step

		PowNoRetargeting:            false,
		PowAllowMinDifficultyBlocks: false,
		GenerateSupported:           false,
	},

	// Mempool parameters.
	RelayNonStdTxs: false,
}
