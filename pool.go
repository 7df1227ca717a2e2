package mathmark

import "runtime"

// Pool bounds for KaTeX runtimes and CLI batch workers.
const (
	MinPoolSize = 1
	// MaxPoolSize caps KaTeX runtimes; each holds a compiled copy of the
	// bundle in its own JavaScript heap.
	MaxPoolSize = 8
)

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize]. In containers the CLI
// sets GOMAXPROCS from the CPU quota first.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/2, MinPoolSize), MaxPoolSize)
}
