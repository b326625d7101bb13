// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "fmt"

// Algo identifies one of the mining algorithms a block may be hashed with.
// Each algorithm keeps its own difficulty history on the shared chain.
type Algo int32

const (
	AlgoSHA256D Algo = iota
	AlgoYespower
	AlgoGhostrider
	AlgoLyra2
	AlgoButkscrypt
	AlgoScrypt

	// NumAlgos is the number of supported mining algorithms.  The
	// retargeting window spans NumAlgos*AveragingInterval blocks so that
	// every algorithm contributes to the measured timespan.
	NumAlgos = 6
)

// AlgoWeightScale is the fixed-point scale of the values returned by
// AlgoWeight.  A real-valued weight w is stored as round(w*AlgoWeightScale).
const AlgoWeightScale = 100000

// algoNames maps algorithm identifiers to their canonical lowercase names.
var algoNames = map[Algo]string{
	AlgoSHA256D:    "sha256d",
	AlgoYespower:   "yespower",
	AlgoGhostrider: "ghostrider",
	AlgoLyra2:      "lyra2",
	AlgoButkscrypt: "butkscrypt",
	AlgoScrypt:     "scrypt",
}

// String returns the canonical name of the algorithm.
func (algo Algo) String() string {
	if name, ok := algoNames[algo]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(algo))
}

// IsValid reports whether the identifier names a supported algorithm.
func (algo Algo) IsValid() bool {
	return algo >= 0 && algo < NumAlgos
}

// ParseAlgo returns the algorithm identifier for a canonical name.
func ParseAlgo(name string) (Algo, error) {
	for algo, n := range algoNames {
		if n == name {
			return algo, nil
		}
	}
	return 0, fmt.Errorf("unknown mining algorithm %q", name)
}

// AlgoWeight returns the relative cost weight of the algorithm as a
// fixed-point integer at AlgoWeightScale.  The weights express how expensive
// one hash of the algorithm is relative to the others and are used by reward
// normalization and network statistics.
//
// Unknown identifiers fall back to the lowest defined weight.  Callers that
// care should treat an invalid identifier as an anomaly worth logging; this
// function stays total so it can sit on the block-acceptance path.
func AlgoWeight(algo Algo) uint32 {
	switch algo {
	case AlgoSHA256D:
		return uint32(0.005 * AlgoWeightScale)
	case AlgoYespower:
		return uint32(0.00015 * AlgoWeightScale)
	case AlgoGhostrider:
		return uint32(6 * AlgoWeightScale)
	case AlgoLyra2:
		return uint32(6 * AlgoWeightScale)
	case AlgoButkscrypt:
		return uint32(1.4 * AlgoWeightScale)
	case AlgoScrypt:
		return uint32(1.2 * AlgoWeightScale)
	default: // Lowest.
		return uint32(0.00015 * AlgoWeightScale)
	}
}
