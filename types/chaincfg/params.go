// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
)

// Net represents which network a message belongs to.  It is the magic prefix
// of every wire message and keys the registered parameter sets.
type Net uint32

// Constants used to indicate the message network.  They can also be used to
// seek to the next message when a stream's state is unknown, but this package
// does not provide that functionality since it's generally a better idea to
// simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main network.
	MainNet Net = 0xd4b6c8f1

	// TestNet represents the test network.
	TestNet Net = 0x0b110907

	// SimNet represents the simulation test network.
	SimNet Net = 0x12141c16
)

// bigOne is 1 represented as a big.Int.  It is defined here to avoid
// the overhead of creating it multiple times.
var bigOne = big.NewInt(1)

// PowParams defines the proof-of-work rules of a network.  All timespans are
// wall-clock durations; consensus code converts them to whole seconds.
type PowParams struct {
	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.  It is the easiest target any algorithm may be given.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// PowTargetSpacing is the desired amount of time between blocks of one
	// algorithm.
	PowTargetSpacing time.Duration

	// AveragingInterval is the number of same-algorithm blocks whose
	// production time is averaged when retargeting that algorithm.
	AveragingInterval int32

	// AveragingTargetTimespan is the desired elapsed time of the combined
	// retargeting window, which spans NumAlgos*AveragingInterval blocks of
	// all algorithms together.
	AveragingTargetTimespan time.Duration

	// MinActualTimespan and MaxActualTimespan bound the damped observed
	// timespan of the window, limiting how far a single retarget may move
	// the difficulty.
	MinActualTimespan time.Duration
	MaxActualTimespan time.Duration

	// LocalTargetAdjustment is the percentage applied per step of the
	// per-algorithm correction, compensating an algorithm that is mined
	// more or less often than its round-robin share.
	LocalTargetAdjustment int64

	// PowNoRetargeting defines whether the network has difficulty
	// retargeting enabled.  This is only suitable for regression and
	// simulation networks.
	PowNoRetargeting bool

	// PowAllowMinDifficultyBlocks defines whether the network allows the
	// special minimum-difficulty blocks for stalled test networks.  Such
	// blocks are ignored as retargeting anchors.
	PowAllowMinDifficultyBlocks bool

	// GenerateSupported specifies whether CPU mining is allowed.
	GenerateSupported bool
}

// Params defines a network by its parameters.  These parameters may be
// used by applications to differentiate networks as well as addresses and
// keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net Net

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// CoinbaseMaturity is the required number of confirmations before newly
	// mined coins can be spent.
	CoinbaseMaturity uint16

	// PowParams houses the proof-of-work rules of the network.
	PowParams PowParams

	// RelayNonStdTxs defines whether the relay of non-standard transactions
	// is the default policy on this network.
	RelayNonStdTxs bool
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	registeredNets = make(map[Net]struct{})
)

// Register registers the network parameters so that the package-level lookup
// helpers can resolve them.  It may error with ErrDuplicateNet if the network
// is already registered (either due to a previous Register call, or the
// network being one of the default networks).
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return errors.Wrap(ErrDuplicateNet, params.Name)
	}
	registeredNets[params.Net] = struct{}{}
	return nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// NetParams returns the registered parameters for a network magic, or nil
// when the magic is unknown.
func NetParams(net Net) *Params {
	switch net {
	case MainNet:
		return &MainNetParams
	case TestNet:
		return &TestNetParams
	case SimNet:
		return &SimNetParams
	}
	return nil
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&SimNetParams)
}
