package ml

import (
	"fmt"
	"math"

	"github.com/b0tShaman/neuro-bench/data"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultLearningRate is the fixed SGD step size of the training loop.
const DefaultLearningRate = 0.01

// Network is a single-hidden-layer perceptron: input -> hidden (ReLU) ->
// output (linear). X and YTrue are fixed for the life of the network; only
// the weights and biases are trained.
type Network struct {
	InputSize, HiddenSize, OutputSize int
	LearningRate                      float64

	// Parameters
	W1 *Matrix // InputSize x HiddenSize
	B1 *Matrix // 1 x HiddenSize
	W2 *Matrix // HiddenSize x OutputSize
	B2 *Matrix // 1 x OutputSize

	// Sample
	X     *Matrix // 1 x InputSize
	YTrue *Matrix // 1 x OutputSize

	// Forward State
	Hidden *Matrix
	Output *Matrix

	// Backward State
	dOutput *Matrix
	dHidden *Matrix
}

// Params is an explicit set of starting values for a Network.
// Nil biases start at zero.
type Params struct {
	InputSize, HiddenSize, OutputSize int

	W1, B1, W2, B2 []float64
	X, YTrue       []float64
}

// NewNetwork allocates a network and draws W1, W2, X and YTrue from u, in
// that order, uniformly in [-1,1). Biases start at zero.
func NewNetwork(inputSize, hiddenSize, outputSize int, u data.Uniform) *Network {
	nw := newNetwork(inputSize, hiddenSize, outputSize)

	data.FillSigned(nw.W1.data, u)
	data.FillSigned(nw.W2.data, u)
	data.FillSigned(nw.X.data, u)
	data.FillSigned(nw.YTrue.data, u)

	return nw
}

// NewNetworkWithParams builds a network from injected values. The slices are
// copied.
func NewNetworkWithParams(p Params) (*Network, error) {
	if p.InputSize <= 0 || p.HiddenSize <= 0 || p.OutputSize <= 0 {
		return nil, fmt.Errorf("layer sizes must be positive, got %d/%d/%d", p.InputSize, p.HiddenSize, p.OutputSize)
	}
	nw := newNetwork(p.InputSize, p.HiddenSize, p.OutputSize)

	fields := []struct {
		name     string
		dst      *Matrix
		src      []float64
		optional bool
	}{
		{"W1", nw.W1, p.W1, false},
		{"B1", nw.B1, p.B1, true},
		{"W2", nw.W2, p.W2, false},
		{"B2", nw.B2, p.B2, true},
		{"X", nw.X, p.X, false},
		{"YTrue", nw.YTrue, p.YTrue, false},
	}
	for _, f := range fields {
		if f.src == nil && f.optional {
			continue
		}
		if len(f.src) != len(f.dst.data) {
			return nil, fmt.Errorf("%s: got %d values, want %d", f.name, len(f.src), len(f.dst.data))
		}
		copy(f.dst.data, f.src)
	}
	return nw, nil
}

func newNetwork(inputSize, hiddenSize, outputSize int) *Network {
	return &Network{
		InputSize:    inputSize,
		HiddenSize:   hiddenSize,
		OutputSize:   outputSize,
		LearningRate: DefaultLearningRate,

		W1: NewMatrix(inputSize, hiddenSize),
		B1: NewMatrix(1, hiddenSize),
		W2: NewMatrix(hiddenSize, outputSize),
		B2: NewMatrix(1, outputSize),

		X:     NewMatrix(1, inputSize),
		YTrue: NewMatrix(1, outputSize),

		Hidden:  NewMatrix(1, hiddenSize),
		Output:  NewMatrix(1, outputSize),
		dOutput: NewMatrix(1, outputSize),
		dHidden: NewMatrix(1, hiddenSize),
	}
}

// -------- NEURAL NETWORK METHODS -------- //

// Params returns a copy of the network's current parameters and sample.
func (nw *Network) Params() Params {
	clone := func(m *Matrix) []float64 {
		return append([]float64(nil), m.data...)
	}
	return Params{
		InputSize:  nw.InputSize,
		HiddenSize: nw.HiddenSize,
		OutputSize: nw.OutputSize,
		W1:         clone(nw.W1),
		B1:         clone(nw.B1),
		W2:         clone(nw.W2),
		B2:         clone(nw.B2),
		X:          clone(nw.X),
		YTrue:      clone(nw.YTrue),
	}
}

// Forward computes Hidden = relu(X*W1 + B1) and Output = Hidden*W2 + B2.
// Each sum starts from the bias and accumulates in increasing index order.
//
// The float64 conversions here and in Backward keep every product rounded
// before it is added, so no platform fuses them into an FMA.
func (nw *Network) Forward() {
	in, hid, out := nw.InputSize, nw.HiddenSize, nw.OutputSize
	x, w1, b1 := nw.X.data, nw.W1.data, nw.B1.data
	w2, b2 := nw.W2.data, nw.B2.data
	hidden, output := nw.Hidden.data, nw.Output.data

	for j := 0; j < hid; j++ {
		sum := b1[j]
		for i := 0; i < in; i++ {
			sum += float64(x[i] * w1[i*hid+j])
		}
		hidden[j] = Relu(sum)
	}

	for k := 0; k < out; k++ {
		sum := b2[k]
		for j := 0; j < hid; j++ {
			sum += float64(hidden[j] * w2[j*out+k])
		}
		output[k] = sum
	}
}

// Backward applies one SGD step from the squared-error residual of the last
// Forward call. Weights are updated in place while the gradient flows back:
// dHidden[j] accumulates W2[j,k] after that weight has already taken its
// step.
func (nw *Network) Backward() {
	in, hid, out := nw.InputSize, nw.HiddenSize, nw.OutputSize
	lr := nw.LearningRate
	x, w1, b1 := nw.X.data, nw.W1.data, nw.B1.data
	w2, b2 := nw.W2.data, nw.B2.data
	hidden := nw.Hidden.data
	dOutput, dHidden := nw.dOutput.data, nw.dHidden.data

	// 1. Output Error (raw residual, not normalized)
	floats.SubTo(dOutput, nw.Output.data, nw.YTrue.data)

	// 2. Output Layer
	nw.dHidden.Reset()
	for j := 0; j < hid; j++ {
		for k := 0; k < out; k++ {
			idx := j*out + k
			grad := hidden[j] * dOutput[k]
			w2[idx] -= float64(lr * grad)
			dHidden[j] += float64(w2[idx] * dOutput[k])
		}
	}
	for k := 0; k < out; k++ {
		b2[k] -= float64(lr * dOutput[k])
	}

	// 3. Hidden Layer (ReLU gate)
	for i := 0; i < in; i++ {
		for j := 0; j < hid; j++ {
			grad := x[i] * ReluGate(hidden[j], dHidden[j])
			w1[i*hid+j] -= float64(lr * grad)
		}
	}
	for j := 0; j < hid; j++ {
		b1[j] -= float64(lr * ReluGate(hidden[j], dHidden[j]))
	}
}

// Step runs one forward and one backward pass.
func (nw *Network) Step() {
	nw.Forward()
	nw.Backward()
}

// Loss returns the mean squared error of the last Forward call.
func (nw *Network) Loss() float64 {
	sq := 0.0
	for k, y := range nw.YTrue.data {
		d := nw.Output.data[k] - y
		sq += d * d
	}
	return sq / float64(nw.OutputSize)
}

// ForwardBLAS recomputes the forward pass through gonum without touching the
// network's own buffers.
func (nw *Network) ForwardBLAS() []float64 {
	var hidden mat.Dense
	hidden.Mul(nw.X.dense, nw.W1.dense)
	hidden.Add(&hidden, nw.B1.dense)
	hidden.Apply(func(_, _ int, v float64) float64 { return Relu(v) }, &hidden)

	var output mat.Dense
	output.Mul(&hidden, nw.W2.dense)
	output.Add(&output, nw.B2.dense)
	return mat.Row(nil, 0, &output)
}

// VerifyForward runs Forward and compares Output against ForwardBLAS.
// It returns the maximum deviation found.
func (nw *Network) VerifyForward(tol float64) (float64, error) {
	nw.Forward()
	ref := nw.ForwardBLAS()
	dev := floats.Distance(nw.Output.data, ref, math.Inf(1))
	if dev > tol || math.IsNaN(dev) {
		return dev, fmt.Errorf("forward pass deviates from reference by %g (tolerance %g)", dev, tol)
	}
	return dev, nil
}
