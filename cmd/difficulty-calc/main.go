// Copyright (c) 2024 The MiningPlanet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/miningplanet/but/corelog"
	"github.com/miningplanet/but/node/chaindata"
	"github.com/miningplanet/but/types/blocknode"
	"github.com/miningplanet/but/types/chaincfg"
	"github.com/miningplanet/but/types/chainhash"
	"github.com/miningplanet/but/types/pow"
)

func main() {
	app := &cli.App{
		Name:  "difficulty-calc",
		Usage: "inspect proof-of-work limits and simulate multi-algo retargeting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "logging verbosity (trace, debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "limits",
				Usage:  "print the proof-of-work limits of every known network",
				Action: limitsCmd,
			},
			{
				Name:  "simulate",
				Usage: "build a synthetic chain from a scenario file and print the next required difficulty per algorithm",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "scenario",
						Usage:    "path to a YAML scenario file",
						Required: true,
					},
				},
				Action: simulateCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func limitsCmd(*cli.Context) error {
	for _, params := range []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNetParams,
		&chaincfg.SimNetParams,
	} {
		bits := params.PowParams.PowLimitBits
		fmt.Printf("%-8s bits=%08x target=%064x work=%d\n",
			params.Name, bits, pow.CompactToBig(bits), pow.CalcWork(bits))
	}
	return nil
}

// scenario describes a synthetic chain used to exercise the retargeting
// rules: a round-robin sequence of blocks, evenly spaced in time, all mined
// against the same starting target.
type scenario struct {
	// Network selects the consensus parameters: mainnet, testnet or simnet.
	Network string `yaml:"network"`
	// Blocks is the length of the generated chain.
	Blocks int32 `yaml:"blocks"`
	// Spacing is the time between consecutive blocks of any algorithm,
	// in time.ParseDuration notation, e.g. "10s".
	Spacing string `yaml:"spacing"`
	// Bits optionally overrides the starting compact target; zero means
	// the network's proof-of-work limit.
	Bits uint32 `yaml:"bits"`
}

func simulateCmd(ctx *cli.Context) error {
	level, err := zerolog.ParseLevel(ctx.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	chaindata.UseLogger(corelog.New("difficulty-calc", level, corelog.Config{}.Default()))

	raw, err := os.ReadFile(ctx.String("scenario"))
	if err != nil {
		return errors.Wrap(err, "unable to read scenario file")
	}

	var sc scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return errors.Wrap(err, "unable to parse scenario file")
	}

	params, err := paramsByName(sc.Network)
	if err != nil {
		return err
	}
	if sc.Blocks <= 0 {
		return errors.New("scenario must produce at least one block")
	}
	spacing := params.PowParams.PowTargetSpacing
	if sc.Spacing != "" {
		spacing, err = time.ParseDuration(sc.Spacing)
		if err != nil {
			return errors.Wrap(err, "invalid spacing")
		}
	}
	bits := sc.Bits
	if bits == 0 {
		bits = params.PowParams.PowLimitBits
	}

	tip := buildChain(sc.Blocks, spacing, bits)
	for algo := pow.Algo(0); algo < pow.NumAlgos; algo++ {
		next := chaindata.CalcNextRequiredDifficulty(tip, &params.PowParams, algo)
		fmt.Printf("%-12s next bits=%08x target=%064x\n", algo, next, pow.CompactToBig(next))
	}
	return nil
}

func paramsByName(name string) (*chaincfg.Params, error) {
	switch name {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	}
	return nil, errors.Errorf("unknown network %q", name)
}

// buildChain assembles a round-robin chain of count blocks with fixed spacing
// and constant bits, starting from a synthetic genesis.
func buildChain(count int32, spacing time.Duration, bits uint32) blocknode.IBlockNode {
	genesisTime := time.Unix(1700000000, 0)

	var tip blocknode.IBlockNode
	for height := int32(0); height < count; height++ {
		var hash chainhash.Hash
		binary.LittleEndian.PutUint32(hash[:4], uint32(height))

		algo := pow.Algo(height % pow.NumAlgos)
		timestamp := genesisTime.Add(time.Duration(height) * spacing)
		tip = blocknode.NewBlockNode(hash, bits, algo, timestamp, tip)
	}
	return tip
}
