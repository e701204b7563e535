package ml

import (
	"testing"

	"github.com/b0tShaman/neuro-bench/data"
	"gonum.org/v1/gonum/floats"
)

var resultNet *Network

const handTol = 1e-12

func mustNetwork(t *testing.T, p Params) *Network {
	t.Helper()
	nw, err := NewNetworkWithParams(p)
	if err != nil {
		t.Fatalf("NewNetworkWithParams: %v", err)
	}
	return nw
}

func assertSlice(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if !floats.EqualApprox(got, want, handTol) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

// One step of a 2-2-1 network, worked by hand. Both hidden units are active,
// and dHidden uses W2 after its update: 0.995*0.5, not 1.0*0.5.
func TestStepHandComputed(t *testing.T) {
	nw := mustNetwork(t, Params{
		InputSize: 2, HiddenSize: 2, OutputSize: 1,
		W1:    []float64{0.5, -0.5, 0.25, 0.5},
		W2:    []float64{1.0, -1.0},
		X:     []float64{1, 2},
		YTrue: []float64{0},
	})

	nw.Step()

	assertSlice(t, "hidden", nw.Hidden.data, []float64{1.0, 0.5})
	assertSlice(t, "output", nw.Output.data, []float64{0.5})
	assertSlice(t, "dOutput", nw.dOutput.data, []float64{0.5})
	assertSlice(t, "W2", nw.W2.data, []float64{0.995, -1.0025})
	assertSlice(t, "dHidden", nw.dHidden.data, []float64{0.4975, -0.50125})
	assertSlice(t, "b2", nw.B2.data, []float64{-0.005})
	assertSlice(t, "W1", nw.W1.data, []float64{0.495025, -0.4949875, 0.24005, 0.510025})
	assertSlice(t, "b1", nw.B1.data, []float64{-0.004975, 0.0050125})
}

// Hidden unit 1 is inactive, so its W1 column and bias must not move even
// though dHidden[1] is non-zero.
func TestStepReluGate(t *testing.T) {
	nw := mustNetwork(t, Params{
		InputSize: 2, HiddenSize: 2, OutputSize: 1,
		W1:    []float64{0.5, -0.5, 0.25, -0.5},
		W2:    []float64{1.0, -1.0},
		X:     []float64{1, 2},
		YTrue: []float64{0},
	})

	nw.Step()

	assertSlice(t, "hidden", nw.Hidden.data, []float64{1.0, 0})
	assertSlice(t, "output", nw.Output.data, []float64{1.0})
	assertSlice(t, "W2", nw.W2.data, []float64{0.99, -1.0})
	assertSlice(t, "dHidden", nw.dHidden.data, []float64{0.99, -1.0})
	assertSlice(t, "b2", nw.B2.data, []float64{-0.01})
	assertSlice(t, "W1", nw.W1.data, []float64{0.4901, -0.5, 0.2302, -0.5})
	assertSlice(t, "b1", nw.B1.data, []float64{-0.0099, 0})
}

func TestForwardUsesBiases(t *testing.T) {
	nw := mustNetwork(t, Params{
		InputSize: 1, HiddenSize: 2, OutputSize: 2,
		W1:    []float64{1, 1},
		B1:    []float64{0.5, -3},
		W2:    []float64{1, 0, 0, 1},
		B2:    []float64{0.25, -0.25},
		X:     []float64{2},
		YTrue: []float64{0, 0},
	})

	nw.Forward()

	assertSlice(t, "hidden", nw.Hidden.data, []float64{2.5, 0})
	assertSlice(t, "output", nw.Output.data, []float64{2.75, -0.25})
	if got, want := nw.Loss(), (2.75*2.75+0.25*0.25)/2; got != want {
		t.Fatalf("Loss = %v, want %v", got, want)
	}
}

// dHidden is rebuilt from zero each step rather than accumulating across
// steps: a network carrying a stale dHidden must behave like a fresh copy.
func TestBackwardResetsHiddenGradient(t *testing.T) {
	a := mustNetwork(t, Params{
		InputSize: 2, HiddenSize: 2, OutputSize: 1,
		W1:    []float64{0.5, -0.5, 0.25, 0.5},
		W2:    []float64{1.0, -1.0},
		X:     []float64{1, 2},
		YTrue: []float64{0},
	})
	a.Step()

	b := mustNetwork(t, a.Params())
	a.Step()
	b.Step()

	for _, pair := range [][2]*Matrix{
		{a.W1, b.W1}, {a.B1, b.B1}, {a.W2, b.W2}, {a.B2, b.B2}, {a.dHidden, b.dHidden},
	} {
		if !floats.Equal(pair[0].data, pair[1].data) {
			t.Fatalf("got %v, want %v", pair[0].data, pair[1].data)
		}
	}
}

func TestNewNetworkDrawOrder(t *testing.T) {
	nw := NewNetwork(3, 4, 2, data.NewLCG(data.NetworkSeed))

	g := data.NewLCG(data.NetworkSeed)
	for _, m := range []*Matrix{nw.W1, nw.W2, nw.X, nw.YTrue} {
		for i, v := range m.data {
			if want := data.Signed(g); v != want {
				t.Fatalf("index %d = %v, want %v", i, v, want)
			}
		}
	}
	for _, b := range [][]float64{nw.B1.data, nw.B2.data} {
		for _, v := range b {
			if v != 0 {
				t.Fatalf("bias %v, want 0", v)
			}
		}
	}
	if nw.LearningRate != DefaultLearningRate {
		t.Fatalf("LearningRate = %v, want %v", nw.LearningRate, DefaultLearningRate)
	}
}

func TestSameSeedSameParameters(t *testing.T) {
	run := func() Params {
		nw := NewNetwork(8, 16, 4, data.NewLCG(99))
		Train(nw, 25)
		return nw.Params()
	}
	a, b := run(), run()

	for _, pair := range [][2][]float64{
		{a.W1, b.W1}, {a.B1, b.B1}, {a.W2, b.W2}, {a.B2, b.B2},
	} {
		if !floats.Equal(pair[0], pair[1]) {
			t.Fatal("identical seeds produced different parameters")
		}
	}
}

func TestTrainLeavesSampleFixed(t *testing.T) {
	nw := NewNetwork(4, 4, 2, data.NewLCG(5))
	x := append([]float64(nil), nw.X.data...)
	y := append([]float64(nil), nw.YTrue.data...)

	if d := Train(nw, 10); d < 0 {
		t.Fatalf("negative elapsed time %v", d)
	}

	if !floats.Equal(x, nw.X.data) || !floats.Equal(y, nw.YTrue.data) {
		t.Fatal("training modified X or YTrue")
	}
}

func TestTrainReducesLoss(t *testing.T) {
	nw := NewNetwork(4, 8, 2, data.NewLCG(11))
	nw.Forward()
	before := nw.Loss()

	Train(nw, 200)
	nw.Forward()

	if after := nw.Loss(); after >= before {
		t.Fatalf("loss did not decrease: before %v after %v", before, after)
	}
}

func TestVerifyForward(t *testing.T) {
	nw := NewNetwork(16, 32, 8, data.NewLCG(2))
	Train(nw, 5)

	if _, err := nw.VerifyForward(1e-9); err != nil {
		t.Fatalf("VerifyForward: %v", err)
	}
}

func TestNewNetworkWithParamsErrors(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero size", Params{InputSize: 0, HiddenSize: 1, OutputSize: 1}},
		{"short W1", Params{
			InputSize: 2, HiddenSize: 2, OutputSize: 1,
			W1: []float64{1}, W2: []float64{1, 1}, X: []float64{1, 1}, YTrue: []float64{0},
		}},
		{"missing X", Params{
			InputSize: 1, HiddenSize: 1, OutputSize: 1,
			W1: []float64{1}, W2: []float64{1}, YTrue: []float64{0},
		}},
		{"long B2", Params{
			InputSize: 1, HiddenSize: 1, OutputSize: 1,
			W1: []float64{1}, W2: []float64{1}, B2: []float64{0, 0}, X: []float64{1}, YTrue: []float64{0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewNetworkWithParams(tt.p); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTrainingConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TrainingConfig
		wantErr bool
	}{
		{"valid", TrainingConfig{InputSize: 2, HiddenSize: 3, OutputSize: 1, Iterations: 1}, false},
		{"zero iterations", TrainingConfig{InputSize: 2, HiddenSize: 3, OutputSize: 1, Iterations: 0}, true},
		{"negative hidden", TrainingConfig{InputSize: 2, HiddenSize: -3, OutputSize: 1, Iterations: 1}, true},
		{"negative lr", TrainingConfig{InputSize: 2, HiddenSize: 3, OutputSize: 1, Iterations: 1, LearningRate: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw, err := tt.cfg.NewNetwork(data.NewLCG(1))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && nw.LearningRate != DefaultLearningRate {
				t.Fatalf("LearningRate = %v, want default", nw.LearningRate)
			}
		})
	}

	nw, err := TrainingConfig{InputSize: 1, HiddenSize: 1, OutputSize: 1, Iterations: 1, LearningRate: 0.5}.NewNetwork(data.NewLCG(1))
	if err != nil {
		t.Fatal(err)
	}
	if nw.LearningRate != 0.5 {
		t.Fatalf("LearningRate = %v, want 0.5", nw.LearningRate)
	}
}

// --- Benchmarks: Training Step ---

func benchmarkStep(b *testing.B, in, hid, out int) {
	nw := NewNetwork(in, hid, out, data.NewLCG(data.NetworkSeed))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		nw.Step()
	}
	resultNet = nw
}

func BenchmarkStep_784_64_10(b *testing.B)   { benchmarkStep(b, 784, 64, 10) }
func BenchmarkStep_784_128_10(b *testing.B)  { benchmarkStep(b, 784, 128, 10) }
func BenchmarkStep_1024_512_64(b *testing.B) { benchmarkStep(b, 1024, 512, 64) }
