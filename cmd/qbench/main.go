// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command qbench measures queue throughput under concurrent producers
// and consumers.
//
// Usage:
//
//	qbench [producers] [consumers] [seconds]
//
// Each argument is a positive integer; defaults are 4 4 2. The run
// prints one line per queue:
//
//	<name>: produced=<N> consumed=<N> seconds=<T> ops/s=<R>
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/concx"
	"github.com/jedisct1/dlog"
	"github.com/jedisct1/go-clocksmith"
)

const ringCapacity = 1 << 16

// benchQueue is the surface both contenders share.
type benchQueue interface {
	Enqueue(*int) error
	Dequeue() (int, error)
}

// mutexQueue is the unbounded mutex-guarded baseline.
type mutexQueue struct {
	mu    sync.Mutex
	items []int
}

func (q *mutexQueue) Enqueue(v *int) error {
	q.mu.Lock()
	q.items = append(q.items, *v)
	q.mu.Unlock()
	return nil
}

func (q *mutexQueue) Dequeue() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return 0, concx.ErrWouldBlock
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, nil
}

type benchResult struct {
	name     string
	produced int64
	consumed int64
	seconds  float64
}

func runBench(name string, q benchQueue, producers, consumers, seconds int) benchResult {
	var start, stop atomix.Bool
	var produced, consumed atomix.Int64
	var wg sync.WaitGroup

	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !start.LoadAcquire() {
				runtime.Gosched()
			}
			v := 0
			for !stop.LoadRelaxed() {
				if q.Enqueue(&v) == nil {
					v++
					produced.Add(1)
				} else {
					runtime.Gosched()
				}
			}
		}()
	}

	for range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !start.LoadAcquire() {
				runtime.Gosched()
			}
			for !stop.LoadRelaxed() || consumed.Load() < produced.Load() {
				if _, err := q.Dequeue(); err == nil {
					consumed.Add(1)
				} else {
					runtime.Gosched()
				}
			}
		}()
	}

	t0 := time.Now()
	start.StoreRelease(true)
	clocksmith.Sleep(time.Duration(seconds) * time.Second)
	stop.StoreRelaxed(true)
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	return benchResult{
		name:     name,
		produced: produced.Load(),
		consumed: consumed.Load(),
		seconds:  elapsed,
	}
}

func printResult(r benchResult) {
	fmt.Printf("%s: produced=%d consumed=%d seconds=%g ops/s=%g\n",
		r.name, r.produced, r.consumed, r.seconds, float64(r.consumed)/r.seconds)
}

func positiveArg(args []string, i, def int) int {
	if len(args) <= i {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n <= 0 {
		dlog.Fatalf("argument %d must be a positive integer, got %q", i+1, args[i])
	}
	return n
}

func main() {
	dlog.Init("qbench", dlog.SeverityNotice, "")

	args := os.Args[1:]
	producers := positiveArg(args, 0, 4)
	consumers := positiveArg(args, 1, 4)
	seconds := positiveArg(args, 2, 2)

	ring := runBench("RingQueue", concx.NewRing[int](ringCapacity), producers, consumers, seconds)
	mutex := runBench("MutexQueue", &mutexQueue{}, producers, consumers, seconds)

	printResult(ring)
	printResult(mutex)
}
