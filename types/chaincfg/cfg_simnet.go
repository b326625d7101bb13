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
	// simNetPowLimit is the highest proof of work value a block can have
	// for the simulation test network.  It is the value 2^255 - 1.
	simNetPowLimit            = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
	simNetPowLimitBits uint32 = 0x207fffff
)

// SimNetParams defines the network parameters for the simulation test
// network.  This network is similar to the normal test network except it is
// intended for private use within a group of individuals doing simulation
// testing.  Difficulty retargeting is disabled entirely so blocks can be
// produced deterministically.
var SimNetParams = Params{
	Name:             "simnet",
	Net:              SimNet,
	DefaultPort:      "30333",
	CoinbaseMaturity: 100,

	PowParams: PowParams{
		PowLimit:          simNetPowLimit,
		PowLimitBits:      simNetPowLimitBits,
		PowTargetSpacing:  time.Minute,
		AveragingInterval: 10,

		AveragingTargetTimespan: time.Hour,
		MinActualTimespan:       time.Second * 3312,
		MaxActualTimespan:       time.Second * 4176,

		LocalTargetAdjustment: 4,

		PowNoRetargeting:            true,
		PowAllowMinDifficultyBlocks: true,
		GenerateSupported:           true,
	},

	RelayNonStdTxs: true,
}
