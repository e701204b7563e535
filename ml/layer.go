package ml

func Relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReluGate passes grad through only where the activation a was positive.
func ReluGate(a, grad float64) float64 {
	if a > 0 {
		return grad
	}
	return 0
}
