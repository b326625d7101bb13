// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"fmt"

	"github.com/miningplanet/but/types/chaincfg"
	"github.com/miningplanet/but/types/chainhash"
	"github.com/miningplanet/but/types/pow"
)

// ValidateProofOfWork ensures the claimed target bits are in range and that
// the block hash is less than the target difficulty as claimed.  On failure
// the returned error is a RuleError describing which rule was violated.
func ValidateProofOfWork(hash *chainhash.Hash, bits uint32, params *chaincfg.PowParams) error {
	target, negative, overflow := pow.CompactToBigWithFlags(bits)

	// The target difficulty must be a positive, representable value.
	if negative || target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too low", target)
		return NewRuleError(ErrUnexpectedDifficulty, str)
	}
	if overflow {
		str := fmt.Sprintf("block target difficulty bits %08x overflow 256 bits", bits)
		return NewRuleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(params.PowLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is higher than max of %064x",
			target, params.PowLimit)
		return NewRuleError(ErrUnexpectedDifficulty, str)
	}

	// The block hash must be less than the claimed target.
	hashNum := pow.HashToBig(hash)
	if hashNum.Cmp(target) > 0 {
		str := fmt.Sprintf("block hash of %064x is higher than expected max of %064x",
			hashNum, target)
		return NewRuleError(ErrHighHash, str)
	}

	return nil
}

// CheckProofOfWork reports whether the hash satisfies the compact target bits
// under the network's proof of work limit.  It is a total predicate over all
// bits and hash values and never errors; block acceptance uses it on the
// consensus-critical path.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, params *chaincfg.PowParams) bool {
	return ValidateProofOfWork(hash, bits, params) == nil
}
