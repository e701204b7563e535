package bench

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Logger writes diagnostics to stderr when verbose output is on. A nil or
// disabled Logger discards everything.
type Logger struct {
	w       io.Writer
	enabled bool
}

func NewLogger(w io.Writer, enabled bool) *Logger {
	return &Logger{w: w, enabled: enabled}
}

func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	fmt.Fprintf(l.w, format+"\n", args...)
}

// Host logs the toolchain, architecture and detected SIMD features.
func (l *Logger) Host() {
	if !l.Enabled() {
		return
	}
	l.Printf("Go Version: %s", runtime.Version())
	l.Printf("GOARCH: %s", runtime.GOARCH)
	l.Printf("CPU: %d cores", runtime.NumCPU())
	features := CPUFeatures()
	if len(features) == 0 {
		l.Printf("CPU Features: none detected")
		return
	}
	l.Printf("CPU Features: %s", strings.Join(features, " "))
}

// CPUFeatures lists the SIMD extensions reported by golang.org/x/sys/cpu for
// the running architecture.
func CPUFeatures() []string {
	type feature struct {
		name string
		on   bool
	}

	var flags []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		flags = []feature{
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE4.1", cpu.X86.HasSSE41},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX512F", cpu.X86.HasAVX512F},
		}
	case "arm64":
		flags = []feature{
			{"FP", cpu.ARM64.HasFP},
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"ATOMICS", cpu.ARM64.HasATOMICS},
			{"SVE", cpu.ARM64.HasSVE},
		}
	}

	var out []string
	for _, f := range flags {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}
