// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miningplanet/but/types/blocknode"
	"github.com/miningplanet/but/types/chaincfg"
	"github.com/miningplanet/but/types/chainhash"
	"github.com/miningplanet/but/types/pow"
)

// midRangeBits is a mid-range target (the classic 0x1b0404cb example) well
// below every network's proof of work limit.
const midRangeBits = 0x1b0404cb

var testGenesisTime = time.Unix(1700000000, 0)

// chainSpec drives the synthetic chain builder.  Algo and Bits default to
// round-robin assignment and constant bits when the override funcs are nil.
type chainSpec struct {
	blocks  int32
	spacing time.Duration
	bits    uint32
	algoAt  func(height int32) pow.Algo
	timeAt  func(height int32) time.Time
}

// buildChain assembles a linear chain per the spec and returns the tip.
func buildChain(t *testing.T, spec chainSpec) blocknode.IBlockNode {
	t.Helper()

	var tip blocknode.IBlockNode
	for height := int32(0); height < spec.blocks; height++ {
		var hash chainhash.Hash
		binary.LittleEndian.PutUint32(hash[:4], uint32(height))

		algo := pow.Algo(height % pow.NumAlgos)
		if spec.algoAt != nil {
			algo = spec.algoAt(height)
		}
		timestamp := testGenesisTime.Add(time.Duration(height) * spec.spacing)
		if spec.timeAt != nil {
			timestamp = spec.timeAt(height)
		}

		tip = blocknode.NewBlockNode(hash, spec.bits, algo, timestamp, tip)
	}
	require.NotNil(t, tip)
	return tip
}

// fullWindowBlocks is the shortest chain that still has a complete averaging
// window in front of the tip, plus a few extra blocks.
func fullWindowBlocks(params *chaincfg.PowParams) int32 {
	return pow.NumAlgos*params.AveragingInterval + 5
}

func TestCalcNextRequiredDifficultyGenesis(t *testing.T) {
	for _, params := range []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNetParams,
		&chaincfg.SimNetParams,
	} {
		for algo := pow.Algo(0); algo < pow.NumAlgos; algo++ {
			bits := CalcNextRequiredDifficulty(nil, &params.PowParams, algo)
			assert.Equal(t, params.PowParams.PowLimitBits, bits, "%s/%v", params.Name, algo)
		}
	}
}

func TestCalcNextRequiredDifficultyNoRetargeting(t *testing.T) {
	params := &chaincfg.SimNetParams.PowParams
	require.True(t, params.PowNoRetargeting)

	tip := buildChain(t, chainSpec{
		blocks:  fullWindowBlocks(params),
		spacing: time.Minute,
		bits:    midRangeBits,
	})

	for algo := pow.Algo(0); algo < pow.NumAlgos; algo++ {
		assert.Equal(t, params.PowLimitBits, CalcNextRequiredDifficulty(tip, params, algo))
	}
}

func TestCalcNextRequiredDifficultyShortChain(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	// One block short of a full averaging window in front of the tip.
	tip := buildChain(t, chainSpec{
		blocks:  pow.NumAlgos * params.AveragingInterval,
		spacing: time.Minute,
		bits:    midRangeBits,
	})

	assert.Equal(t, params.PowLimitBits,
		CalcNextRequiredDifficulty(tip, params, pow.AlgoSHA256D))
}

func TestCalcNextRequiredDifficultyMissingAlgo(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	// A long chain mined exclusively with scrypt has no anchor for any
	// other algorithm.
	tip := buildChain(t, chainSpec{
		blocks:  fullWindowBlocks(params),
		spacing: time.Minute,
		bits:    midRangeBits,
		algoAt:  func(int32) pow.Algo { return pow.AlgoScrypt },
	})

	assert.Equal(t, params.PowLimitBits,
		CalcNextRequiredDifficulty(tip, params, pow.AlgoGhostrider))
	assert.NotEqual(t, params.PowLimitBits,
		CalcNextRequiredDifficulty(tip, params, pow.AlgoScrypt))
}

// TestCalcNextRequiredDifficultyBaseline runs the no-drift scenario: blocks
// arrive exactly on the ideal combined schedule, so the resulting targets stay
// near the previous one, moved only by damping rounding and the per-algo
// correction.
func TestCalcNextRequiredDifficultyBaseline(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	// 65 blocks at the ideal spacing of one block per minute across all
	// algorithms.  Tip is at height 64.
	tip := buildChain(t, chainSpec{
		blocks:  fullWindowBlocks(params),
		spacing: time.Minute,
		bits:    midRangeBits,
	})

	want := map[pow.Algo]uint32{
		pow.AlgoSHA256D:    0x1b03d0db, // adjustments=+1
		pow.AlgoYespower:   0x1b03ab49, // adjustments=+2
		pow.AlgoGhostrider: 0x1b038729, // adjustments=+3
		pow.AlgoLyra2:      0x1b03646c, // adjustments=+4
		pow.AlgoButkscrypt: 0x1b034305, // adjustments=+5
		pow.AlgoScrypt:     0x1b03f7ee, // adjustments=0, pure damped retarget
	}

	for algo, wantBits := range want {
		gotBits := CalcNextRequiredDifficulty(tip, params, algo)
		if !assert.Equal(t, wantBits, gotBits, "algo %v", algo) {
			t.Logf("tip: %s", spew.Sdump(tip))
		}

		// Monotone ceiling invariant.
		assert.LessOrEqual(t,
			pow.CompactToBig(gotBits).Cmp(params.PowLimit), 0, "algo %v", algo)
	}
}

// TestCalcNextRequiredDifficultyEases doubles the block spacing: the observed
// timespan hits the MaxActualTimespan clamp and every algorithm's target must
// ease relative to the baseline result.
func TestCalcNextRequiredDifficultyEases(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	tip := buildChain(t, chainSpec{
		blocks:  fullWindowBlocks(params),
		spacing: 2 * time.Minute,
		bits:    midRangeBits,
	})

	baseline := map[pow.Algo]uint32{
		pow.AlgoSHA256D:    0x1b03d0db,
		pow.AlgoYespower:   0x1b03ab49,
		pow.AlgoGhostrider: 0x1b038729,
		pow.AlgoLyra2:      0x1b03646c,
		pow.AlgoButkscrypt: 0x1b034305,
		pow.AlgoScrypt:     0x1b03f7ee,
	}
	want := map[pow.Algo]uint32{
		pow.AlgoSHA256D:    0x1b047b7f,
		pow.AlgoYespower:   0x1b044f5d,
		pow.AlgoGhostrider: 0x1b0424ed,
		pow.AlgoLyra2:      0x1b03fc1f,
		pow.AlgoButkscrypt: 0x1b03d4e3,
		pow.AlgoScrypt:     0x1b04a966, // clamped timespan 4176s over target 3600s
	}

	for algo, wantBits := range want {
		gotBits := CalcNextRequiredDifficulty(tip, params, algo)
		assert.Equal(t, wantBits, gotBits, "algo %v", algo)

		// Eased means a numerically larger target than the baseline.
		got := pow.CompactToBig(gotBits)
		base := pow.CompactToBig(baseline[algo])
		assert.Positive(t, got.Cmp(base), "algo %v", algo)
	}
}

// TestCalcNextRequiredDifficultyCeiling starts at the proof of work limit
// with badly stretched timestamps; the result must clamp to the limit rather
// than ease past it.
func TestCalcNextRequiredDifficultyCeiling(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	tip := buildChain(t, chainSpec{
		blocks:  fullWindowBlocks(params),
		spacing: 2 * time.Minute,
		bits:    params.PowLimitBits,
	})

	for algo := pow.Algo(0); algo < pow.NumAlgos; algo++ {
		gotBits := CalcNextRequiredDifficulty(tip, params, algo)
		assert.Equal(t, params.PowLimitBits, gotBits, "algo %v", algo)
	}
}

func TestLastBlockIndexForAlgo(t *testing.T) {
	params := &chaincfg.MainNetParams.PowParams

	tip := buildChain(t, chainSpec{
		blocks:  20,
		spacing: time.Minute,
		bits:    midRangeBits,
	})

	// Round-robin assignment: the nearest sha256d block below height 19 is
	// height 18.
	node := LastBlockIndexForAlgo(tip, params, pow.AlgoSHA256D)
	require.NotNil(t, node)
	assert.Equal(t, int32(18), node.Height())

	// The tip itself qualifies when its algorithm matches.
	node = LastBlockIndexForAlgo(tip, params, tip.Algo())
	require.NotNil(t, node)
	assert.Equal(t, tip.Height(), node.Height())

	// A chain without the requested algorithm yields no anchor.
	scryptOnly := buildChain(t, chainSpec{
		blocks:  20,
		spacing: time.Minute,
		bits:    midRangeBits,
		algoAt:  func(int32) pow.Algo { return pow.AlgoScrypt },
	})
	assert.Nil(t, LastBlockIndexForAlgo(scryptOnly, params, pow.AlgoLyra2))
}

// TestLastBlockIndexForAlgoSkipsMinDifficulty ensures emergency
// minimum-difficulty blocks are not used as retargeting anchors on networks
// that allow them.
func TestLastBlockIndexForAlgoSkipsMinDifficulty(t *testing.T) {
	params := &chaincfg.TestNetParams.PowParams
	require.True(t, params.PowAllowMinDifficultyBlocks)

	spacing := params.PowTargetSpacing

	// All blocks are ghostrider.  The tip's timestamp jumps more than six
	// target spacings past its parent, marking it as an emergency block.
	tip := buildChain(t, chainSpec{
		blocks: 10,
		bits:   midRangeBits,
		algoAt: func(int32) pow.Algo { return pow.AlgoGhostrider },
		timeAt: func(height int32) time.Time {
			ts := testGenesisTime.Add(time.Duration(height) * spacing)
			if height == 9 {
				ts = ts.Add(7 * spacing)
			}
			return ts
		},
	})

	node := LastBlockIndexForAlgo(tip, params, pow.AlgoGhostrider)
	require.NotNil(t, node)
	assert.Equal(t, int32(8), node.Height())

	// The same chain on a network without the min-difficulty rule accepts
	// the tip as the anchor.
	mainParams := &chaincfg.MainNetParams.PowParams
	node = LastBlockIndexForAlgo(tip, mainParams, pow.AlgoGhostrider)
	require.NotNil(t, node)
	assert.Equal(t, int32(9), node.Height())
}
