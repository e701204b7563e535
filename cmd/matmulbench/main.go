// Command matmulbench times a naive N×N float64 matrix multiplication.
//
//	matmulbench [flags] <N>
//
// A and B are filled from one uniform [0,1) draw per element, so they are
// identical. Only the multiply is timed. On success a single line is written
// to stdout:
//
//	N=<N>  time=<ms> ms
package main

import (
	"fmt"
	"os"

	"github.com/b0tShaman/neuro-bench/bench"
	"github.com/b0tShaman/neuro-bench/data"
	"github.com/b0tShaman/neuro-bench/ml"
	"gonum.org/v1/gonum/floats"
)

// Per unit of N. Rounding error grows with the length of each dot product.
var verifyTolerance = 1e-12

var command = bench.Command{
	Name:  "matmulbench",
	Short: "Time a naive dense N×N matrix multiplication",
	Args:  []string{"N"},
	Run:   run,
}

func main() {
	os.Exit(bench.Main(command))
}

func run(env *bench.Env, sizes []int) error {
	n := sizes[0]
	env.Log.Printf("Config: N=%d", n)

	// 1. Allocate & fill
	a := ml.NewMatrix(n, n)
	b := ml.NewMatrix(n, n)
	c := ml.NewMatrix(n, n)
	ml.FillShared(a, b, env.Source(data.MatMulSeed))

	// 2. Time the multiply
	elapsed := ml.TimeMatMul(a, b, c)

	// 3. Verify before anything reaches stdout
	if env.Verify {
		dev, err := ml.VerifyMatMul(a, b, c, verifyTolerance*float64(n))
		if err != nil {
			return fmt.Errorf("%w: %v", bench.ErrVerify, err)
		}
		env.Log.Printf("Verify: max deviation from gonum %g", dev)
	}

	// 4. Report
	env.Result(bench.FormatMatMul(n, elapsed))
	env.Log.Printf("Checksum: %.6f", floats.Sum(c.Data()))
	return nil
}
