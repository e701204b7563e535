package bench

import (
	"fmt"
	"time"
)

// Millis converts d to fractional milliseconds (nanoseconds / 1e6).
func Millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// FormatMatMul renders the matmulbench result line, without a newline.
func FormatMatMul(n int, elapsed time.Duration) string {
	return fmt.Sprintf("N=%d  time=%.3f ms", n, Millis(elapsed))
}

// FormatTrain renders the nntrainbench result line, without a newline.
func FormatTrain(input, hidden, output, iters int, elapsed time.Duration) string {
	return fmt.Sprintf("input=%d hidden=%d output=%d iters=%d time=%.3f ms",
		input, hidden, output, iters, Millis(elapsed))
}
