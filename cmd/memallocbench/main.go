// Command memallocbench drives a random malloc/free workload against the
// allocator and reports throughput and the final self-check result, in
// the spirit of lldb/lab/1's FLT-comparison harness.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"
	"unsafe"

	"modernc.org/memalloc"
	"modernc.org/memalloc/memarena"
)

var (
	ops      = flag.Int("n", 200000, "number of malloc/free operations")
	capacity = flag.Int("cap", 64<<20, "arena capacity in bytes")
	maxSize  = flag.Int("max", 4096, "maximum single allocation size")
	seed     = flag.Int64("seed", 1, "random seed")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	arena := memarena.New(*capacity)
	a := memalloc.New(arena)
	if err := a.Init(); err != nil {
		log.Fatal(err)
	}
	a.SetDiagnosticSink(os.Stderr)

	rng := rand.New(rand.NewSource(*seed))
	live := make([]unsafe.Pointer, 0, *ops)

	start := time.Now()
	for i := 0; i < *ops; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}

		size := uintptr(rng.Intn(*maxSize) + 1)
		p := a.Malloc(size)
		if p == nil {
			log.Printf("op %d: malloc(%d) failed, arena exhausted", i, size)
			break
		}
		live = append(live, p)
	}
	elapsed := time.Since(start)

	for _, p := range live {
		a.Free(p)
	}

	violations := a.Check(0)
	log.Printf("%d ops in %s (%.0f ops/s), %d check violations",
		*ops, elapsed, float64(*ops)/elapsed.Seconds(), violations)
}
