// Command nntrainbench times SGD training of a single-hidden-layer network
// on one fixed sample.
//
//	nntrainbench [flags] <inputSize> <hiddenSize> <outputSize> <iterations>
//
// Weights, input and target are drawn uniformly in [-1,1) before timing.
// Each iteration is one forward pass (ReLU hidden, linear output) followed by
// an in-place backward pass with learning rate 0.01. On success a single line
// is written to stdout:
//
//	input=<i> hidden=<h> output=<o> iters=<n> time=<ms> ms
package main

import (
	"fmt"
	"os"

	"github.com/b0tShaman/neuro-bench/bench"
	"github.com/b0tShaman/neuro-bench/data"
	"github.com/b0tShaman/neuro-bench/ml"
	"gonum.org/v1/gonum/floats"
)

var verifyTolerance = 1e-9

var command = bench.Command{
	Name:  "nntrainbench",
	Short: "Time forward/backward training of a small fully-connected network",
	Args:  []string{"inputSize", "hiddenSize", "outputSize", "iterations"},
	Run:   run,
}

func main() {
	os.Exit(bench.Main(command))
}

func run(env *bench.Env, sizes []int) error {
	cfg := ml.TrainingConfig{
		InputSize:  sizes[0],
		HiddenSize: sizes[1],
		OutputSize: sizes[2],
		Iterations: sizes[3],
	}
	env.Log.Printf("TrainingConfig: %+v", cfg)

	// 1. Initialize Network
	nw, err := cfg.NewNetwork(env.Source(data.NetworkSeed))
	if err != nil {
		return &bench.UsageError{Err: err}
	}

	// 2. Time the training loop
	elapsed := ml.Train(nw, cfg.Iterations)

	// 3. Verify before anything reaches stdout
	if env.Verify {
		dev, err := nw.VerifyForward(verifyTolerance)
		if err != nil {
			return fmt.Errorf("%w: %v", bench.ErrVerify, err)
		}
		env.Log.Printf("Verify: max deviation from gonum %g | Loss: %.6f", dev, nw.Loss())
	}

	// 4. Report
	env.Result(bench.FormatTrain(cfg.InputSize, cfg.HiddenSize, cfg.OutputSize, cfg.Iterations, elapsed))
	env.Log.Printf("Checksum: W1=%.6f W2=%.6f", floats.Sum(nw.W1.Data()), floats.Sum(nw.W2.Data()))
	return nil
}
