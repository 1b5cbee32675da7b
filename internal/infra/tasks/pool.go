package tasks

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Pool is a fixed-size worker pool for background delivery jobs. Submit is
// effectively non-blocking: it only blocks when the buffered queue is full.
type Pool struct {
	jobs    chan func(ctx context.Context)
	wg      sync.WaitGroup
	logger  *logrus.Entry
	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	stopped bool
}

func NewPool(workers, queueSize int, logger *logrus.Entry) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan func(ctx context.Context), queueSize),
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.WithFields(logrus.Fields{
						"worker": id,
						"panic":  r,
					}).Error("Recovered from panic in delivery job")
				}
			}()
			job(p.baseCtx)
		}()
	}
}

// Submit queues a job for execution. Jobs submitted after Stop are dropped.
func (p *Pool) Submit(job func(ctx context.Context)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		p.logger.Warn("Worker pool is stopped, dropping job")
		return
	}
	p.jobs <- job
}

// Stop drains the queue, waits for in-flight jobs and releases the workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.jobs)
	p.wg.Wait()
	p.cancel()
}
