// Package parallel provides the bounded-concurrency fan-out helpers the
// ServerKey utility layer (apply_parallel/zip_parallel, spec.md §4.1) is
// built on. The worker-pool sizing mirrors lattigo's ring package (worker
// count derived from the number of logical cores), with the fan-out
// itself expressed via golang.org/x/sync/errgroup rather than lattigo's
// hand-rolled sync.WaitGroup loops, following scode-saltybox's dependency
// on the same module.
package parallel

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
)

// Workers returns the worker-pool size this process should use: the
// number of logical cores cpuid reports, falling back to
// runtime.NumCPU() if cpuid can't determine it (e.g. under emulation).
func Workers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Map applies f to every index in [0, n) with bounded concurrency, and
// returns the first error any call produced (if any). Each index's call
// to f is independent; nothing about which index runs on which goroutine,
// or in which order, is observable from outside Map.
func Map(n int, f func(i int) error) error {
	if n <= 0 {
		return nil
	}
	g := new(errgroup.Group)
	g.SetLimit(Workers())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return f(i) })
	}
	return g.Wait()
}

// MapNoError is Map for closures that cannot fail, matching the common
// case in the ServerKey layer where every per-index step is itself a
// homomorphic Evaluator call (which never returns an error).
func MapNoError(n int, f func(i int)) {
	_ = Map(n, func(i int) error { f(i); return nil })
}
