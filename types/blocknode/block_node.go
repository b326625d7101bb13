// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocknode

import (
	"math/big"
	"sort"
	"time"

	"github.com/miningplanet/but/types/chainhash"
	"github.com/miningplanet/but/types/pow"
)

// medianTimeBlocks is the number of previous blocks which should be
// used to calculate the median time used to validate block timestamps.
const medianTimeBlocks = 11

// IBlockNode is the read interface of one entry of the block index.  The
// index owns the nodes; consensus code only walks them backward via Parent.
type IBlockNode interface {
	GetHash() chainhash.Hash
	Height() int32
	Bits() uint32
	Algo() pow.Algo
	Timestamp() int64
	WorkSum() *big.Int
	Parent() IBlockNode
	Ancestor(height int32) IBlockNode
	RelativeAncestor(distance int32) IBlockNode
	CalcPastMedianTime() time.Time
}

// BlockNode represents a block within the block chain and is primarily used
// to aid in selecting the best chain to be the main chain.  The main chain is
// stored into the block database.
type BlockNode struct {
	// NOTE: Additions, deletions, or modifications to the order of the
	// definitions in this struct should not be changed without considering
	// how it affects alignment on 64-bit platforms.  The current order is
	// specifically crafted to result in minimal padding.  There will be
	// hundreds of thousands of these in memory, so a few extra bytes of
	// padding adds up.

	parent  IBlockNode     // parent is the parent block for this node.
	hash    chainhash.Hash // hash is the pow hash of the block.
	workSum *big.Int       // workSum is the total amount of work in the chain up to and including this node.
	height  int32          // height is the position in the block chain.

	// Some fields from block headers to aid in best chain selection.
	// These must be treated as immutable.
	bits      uint32
	algo      pow.Algo
	timestamp int64
}

// NewBlockNode returns a new block node for the given header fields and
// parent node, calculating the height and workSum from the respective fields
// on the parent.  This function is NOT safe for concurrent access.
func NewBlockNode(hash chainhash.Hash, bits uint32, algo pow.Algo, timestamp time.Time, parent IBlockNode) *BlockNode {
	node := &BlockNode{
		hash:      hash,
		workSum:   pow.CalcWork(bits),
		bits:      bits,
		algo:      algo,
		timestamp: timestamp.Unix(),
	}
	if parent != nil {
		node.parent = parent
		node.height = parent.Height() + 1
		node.workSum = node.workSum.Add(parent.WorkSum(), node.workSum)
	}
	return node
}

func (node *BlockNode) GetHash() chainhash.Hash { return node.hash }
func (node *BlockNode) Height() int32           { return node.height }
func (node *BlockNode) Bits() uint32            { return node.bits }
func (node *BlockNode) Algo() pow.Algo          { return node.algo }
func (node *BlockNode) Timestamp() int64        { return node.timestamp }
func (node *BlockNode) WorkSum() *big.Int       { return node.workSum }

// Parent returns the immediate ancestor of the node, or nil at genesis.
func (node *BlockNode) Parent() IBlockNode {
	if node.parent == nil {
		return nil
	}
	return node.parent
}

// Ancestor returns the ancestor block node at the provided height by following
// the chain backwards from this node.  The returned block will be nil when a
// height is requested that is after the height of the passed node or is less
// than zero.
//
// This function is safe for concurrent access.
func (node *BlockNode) Ancestor(height int32) IBlockNode {
	if height < 0 || height > node.height {
		return nil
	}

	n := IBlockNode(node)
	for ; n != nil && n.Height() != height; n = n.Parent() {
		// Intentionally left blank
	}

	return n
}

// RelativeAncestor returns the ancestor block node a relative 'distance' blocks
// before this node.  This is equivalent to calling Ancestor with the node's
// height minus provided distance.
//
// This function is safe for concurrent access.
func (node *BlockNode) RelativeAncestor(distance int32) IBlockNode {
	return node.Ancestor(node.height - distance)
}

// CalcPastMedianTime calculates the median time of the previous few blocks
// prior to, and including, the block node.
//
// This function is safe for concurrent access.
func (node *BlockNode) CalcPastMedianTime() time.Time {
	// Create a slice of the previous few block timestamps used to calculate
	// the median per the number defined by the constant medianTimeBlocks.
	timestamps := make([]int64, medianTimeBlocks)
	numNodes := 0
	iterNode := IBlockNode(node)
	for i := 0; i < medianTimeBlocks && iterNode != nil; i++ {
		timestamps[i] = iterNode.Timestamp()
		numNodes++

		iterNode = iterNode.Parent()
	}

	// Prune the slice to the actual number of available timestamps which
	// will be fewer than desired near the beginning of the block chain
	// and sort them.
	timestamps = timestamps[:numNodes]
	sort.Sort(timeSorter(timestamps))

	// NOTE: The consensus rules incorrectly calculate the median for even
	// numbers of blocks.  A true median averages the middle two elements
	// for a set with an even number of elements in it.   Since the constant
	// for the previous number of blocks to be used is odd, this is only an
	// issue for a few blocks near the beginning of the chain.  I suspect
	// this is an optimization even though the result is slightly wrong for
	// a few of the first blocks since after the first few blocks, there
	// will always be an odd number of blocks in the set per the constant.
	//
	// This code follows suit to ensure the same rules are used, however, be
	// aware that should the medianTimeBlocks constant ever be changed to an
	// even number, this code will be wrong.
	medianTimestamp := timestamps[numNodes/2]
	return time.Unix(medianTimestamp, 0)
}

// timeSorter implements sort.Interface to allow a slice of timestamps to
// be sorted.
type timeSorter []int64

// Len returns the number of timestamps in the slice.  It is part of the
// sort.Interface implementation.
func (s timeSorter) Len() int { return len(s) }

// Swap swaps the timestamps at the passed indices.  It is part of the
// sort.Interface implementation.
func (s timeSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less returns whether the timestamp with index i should sort before the
// timestamp with index j.  It is part of the sort.Interface implementation.
func (s timeSorter) Less(i, j int) bool { return s[i] < s[j] }
