// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Run on a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// Pool distributes jobs across workers, each with its own queue. An idle
// worker steals from the other queues, so one slow drawing does not hold
// back the jobs queued behind it.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. Zero or negative
// means GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), size)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}
		if job := p.steal(id); job != nil {
			job()
			continue
		}
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run executes jobs and waits for the started ones to finish. Jobs are
// queued round-robin. Once ctx is done, jobs that have not started are
// skipped; started jobs see the cancellation through their ctx argument.
//
// Run reports how many jobs ran. It returns ctx.Err() when any job was
// skipped, and ErrClosed when the pool was closed.
func (p *Pool) Run(ctx context.Context, jobs []func(ctx context.Context)) (int, error) {
	if !p.running.Load() {
		return 0, ErrClosed
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	var (
		wg  sync.WaitGroup
		ran atomic.Int64
	)
	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			ran.Add(1)
			job(ctx)
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-ctx.Done():
			wg.Done()
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()

	n := int(ran.Load())
	if n < len(jobs) {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		return n, ErrClosed
	}
	return n, nil
}

// Close stops the workers after the queued jobs have drained. Close is
// safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }
