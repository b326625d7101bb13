// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"math/big"
	"time"

	"github.com/miningplanet/but/types/blocknode"
	"github.com/miningplanet/but/types/chaincfg"
	"github.com/miningplanet/but/types/pow"
)

// CalcNextRequiredDifficulty calculates the required difficulty in compact
// form for the block mined with the given algorithm after the passed previous
// block node.
//
// Each algorithm is retargeted against its own chain of same-algorithm
// blocks, but the observed timespan is measured over a combined window of
// pow.NumAlgos*AveragingInterval blocks of all algorithms, so that the
// combined block rate stays on schedule no matter how hash power is split
// between algorithms.  A secondary per-algorithm correction compensates an
// algorithm that has been mined more or less often than its round-robin
// share of one block in every pow.NumAlgos.
//
// lastNode may be nil to request the difficulty of the genesis block.  The
// function is total: every shortage of history degrades to the limit target
// rather than an error.
//
// This function is safe for concurrent access as long as the ancestor chain
// of lastNode is not mutated during the call.
func CalcNextRequiredDifficulty(lastNode blocknode.IBlockNode, params *chaincfg.PowParams, algo pow.Algo) uint32 {
	// Genesis block.
	if lastNode == nil {
		return params.PowLimitBits
	}

	// Find the first block of the averaging interval by going back what we
	// want to be AveragingInterval blocks per algorithm.  The window is not
	// filtered by algorithm: it measures global elapsed time.
	firstNode := lastNode
	for i := int32(0); firstNode != nil && i < pow.NumAlgos*params.AveragingInterval; i++ {
		firstNode = firstNode.Parent()
	}

	prevAlgoNode := LastBlockIndexForAlgo(lastNode, params, algo)
	if prevAlgoNode == nil || firstNode == nil || params.PowNoRetargeting {
		return params.PowLimitBits
	}

	// Limit the adjustment step.  Both ends of the window use the past
	// median time rather than the raw timestamp to prevent time-warp
	// attacks.
	averagingTargetTimespan := int64(params.AveragingTargetTimespan / time.Second)
	actualTimespan := lastNode.CalcPastMedianTime().Unix() - firstNode.CalcPastMedianTime().Unix()
	actualTimespan = averagingTargetTimespan + (actualTimespan-averagingTargetTimespan)/4

	if minTimespan := int64(params.MinActualTimespan / time.Second); actualTimespan < minTimespan {
		actualTimespan = minTimespan
	}
	if maxTimespan := int64(params.MaxActualTimespan / time.Second); actualTimespan > maxTimespan {
		actualTimespan = maxTimespan
	}

	// Global retarget: rescale the algorithm's own previous target by how
	// far off-pace the whole network was.  The result uses integer
	// division which means it will be slightly rounded down.
	newTarget := pow.CompactToBig(prevAlgoNode.Bits())
	newTarget.Mul(newTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(averagingTargetTimespan))

	// Per-algo retarget: adjustments measures how far the algorithm's last
	// block sits from the round-robin ideal of one block in every
	// pow.NumAlgos.  The sign convention and the NumAlgos-1 offset are
	// consensus-defining; do not "fix" them.
	adjustments := prevAlgoNode.Height() + pow.NumAlgos - 1 - lastNode.Height()
	multiplicator := big.NewInt(100 + params.LocalTargetAdjustment)
	hundred := big.NewInt(100)

	// The correction is applied one step at a time with truncating integer
	// division at each step.  A closed form via pow(multiplicator, n) was
	// tried and rounds differently, which forks consensus; keep the loop.
	if adjustments > 0 {
		for i := int32(0); i < adjustments; i++ {
			if newTarget.Cmp(params.PowLimit) > 0 {
				newTarget.Set(params.PowLimit)
				break
			}
			newTarget.Mul(newTarget, hundred)
			newTarget.Div(newTarget, multiplicator)
		}
	}
	if adjustments < 0 {
		for i := int32(0); i < -adjustments; i++ {
			if newTarget.Cmp(params.PowLimit) > 0 {
				newTarget.Set(params.PowLimit)
				break
			}
			newTarget.Mul(newTarget, multiplicator)
			newTarget.Div(newTarget, hundred)
		}
	}

	// Limit new value to the proof of work limit.
	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget.Set(params.PowLimit)
	}

	newTargetBits := pow.BigToCompact(newTarget)
	log.Debug().
		Int32("adjustments", adjustments).
		Str("algo", algo.String()).
		Uint32("powLimit", params.PowLimitBits).
		Uint32("newTarget", newTargetBits).
		Msg("calculated next required difficulty")

	return newTargetBits
}

// LastBlockIndexForAlgo returns the nearest ancestor of node, inclusive,
// that was mined with the given algorithm, or nil when no such ancestor
// exists.
//
// On networks that permit minimum-difficulty blocks, a block whose timestamp
// runs more than six target spacings ahead of its parent is an emergency
// block mined at the limit target; it is skipped so it never anchors a
// retarget.
func LastBlockIndexForAlgo(node blocknode.IBlockNode, params *chaincfg.PowParams, algo pow.Algo) blocknode.IBlockNode {
	targetSpacing := int64(params.PowTargetSpacing / time.Second)

	for ; node != nil; node = node.Parent() {
		if node.Algo() != algo {
			continue
		}

		// Ignore special min-difficulty testnet blocks.
		if params.PowAllowMinDifficultyBlocks &&
			node.Parent() != nil &&
			node.Timestamp() > node.Parent().Timestamp()+targetSpacing*6 {
			continue
		}

		return node
	}
	return nil
}
