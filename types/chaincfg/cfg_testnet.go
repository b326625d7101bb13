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
	// testNetPowLimit is the highest proof of work value a block can have
	// for the test network.  It is the value 2^240 - 1.
	testNetPowLimit            = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)
	testNetPowLimitBits uint32 = 0x1f00ffff // target=0000ffff00000000000000000000000000000000000000000000000000000000
)

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name:             "testnet",
	Net:              TestNet,
	DefaultPort:      "20333",
	CoinbaseMaturity: 100,

	PowParams: PowParams{
		PowLimit:          testNetPowLimit,
		PowLimitBits:      testNetPowLimitBits,
		PowTargetSpacing:  time.Minute,
		AveragingInterval: 10,

		AveragingTargetTimespan: time.Hour,

		MinActualTimespan: time.Second * 3312, // 1h * (100 - 8) / 100
		MaxActualTimespan: time.Second * 4176, // 1h * (100 + 16) / 100

		LocalTargetAdjustment: 4,

		PowNoRetargeting: false,

		// Low-hashpower networks may mine emergency minimum-difficulty
		// blocks after a long stall.  Those blocks never serve as a
		// retargeting anchor.
		PowAllowMinDifficultyBlocks: true,
		GenerateSupported:           true,
	},

	RelayNonStdTxs: true,
}
