package ml

import (
	"fmt"
	"time"

	"github.com/b0tShaman/neuro-bench/data"
)

type TrainingConfig struct {
	InputSize    int
	HiddenSize   int
	OutputSize   int
	Iterations   int
	LearningRate float64 // Zero selects DefaultLearningRate
}

func (cfg TrainingConfig) Validate() error {
	if cfg.InputSize <= 0 || cfg.HiddenSize <= 0 || cfg.OutputSize <= 0 {
		return fmt.Errorf("layer sizes must be positive, got %d/%d/%d", cfg.InputSize, cfg.HiddenSize, cfg.OutputSize)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.LearningRate < 0 {
		return fmt.Errorf("learning rate must not be negative, got %g", cfg.LearningRate)
	}
	return nil
}

// NewNetwork validates cfg and draws a fresh network from u.
func (cfg TrainingConfig) NewNetwork(u data.Uniform) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nw := NewNetwork(cfg.InputSize, cfg.HiddenSize, cfg.OutputSize, u)
	if cfg.LearningRate != 0 {
		nw.LearningRate = cfg.LearningRate
	}
	return nw, nil
}

// Train runs iterations forward/backward steps on nw and returns the elapsed
// wall-clock time of the loop alone.
func Train(nw *Network, iterations int) time.Duration {
	start := time.Now()
	for it := 0; it < iterations; it++ {
		nw.Forward()
		nw.Backward()
	}
	return time.Since(start)
}

// TimeMatMul runs MatMul(a, b, out) once and returns its elapsed wall-clock
// time. Allocation and filling happen before the call.
func TimeMatMul(a, b, out *Matrix) time.Duration {
	start := time.Now()
	MatMul(a, b, out)
	return time.Since(start)
}
