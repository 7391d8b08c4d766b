package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a fixed set of workers that execute jobs concurrently.
// One job per article keeps state isolated: jobs share nothing mutable.
// The pool's context derives from the caller's, so cancellation and
// deadlines reach every running job.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2), // Buffered to prevent blocking
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a job to the pool for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the job queue, blocks until the workers have drained it, and
// then closes the results channel. Both channels are bounded, so results
// must be consumed while jobs run (see Collector) or workers stall once
// the queued jobs outnumber the channel capacity.
func (p *Pool) Wait() {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// Collector drains a pool's results as they complete, so workers never
// block on the bounded results channel no matter how many jobs are queued.
// Create the collector before submitting jobs.
type Collector struct {
	results []Result
	done    chan struct{}
}

// NewCollector starts collecting results from the pool
func NewCollector(p *Pool) *Collector {
	c := &Collector{done: make(chan struct{})}

	go func() {
		defer close(c.done)
		for result := range p.results {
			c.results = append(c.results, result)
		}
	}()

	return c
}

// Results blocks until the pool's results channel is closed and returns
// everything collected, in completion order.
func (c *Collector) Results() []Result {
	<-c.done
	return c.results
}
