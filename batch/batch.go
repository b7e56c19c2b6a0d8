// Package batch evaluates many lines in the background. Jobs run one at a
// time in submission order; the lines of a job are evaluated concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/arith/calc"
)

var log = commonlog.GetLogger("arith.batch")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Lines     []string
	CreatedAt time.Time
}

// LineResult is the outcome for one line. Line is 1-based. Error and Stage
// are empty when the line evaluated.
type LineResult struct {
	Line  int        `json:"line"`
	Input string     `json:"input"`
	Value float64    `json:"value"`
	Trace string     `json:"trace,omitempty"`
	Error string     `json:"error,omitempty"`
	Stage calc.Stage `json:"stage,omitempty"`
}

func (l LineResult) OK() bool {
	return l.Error == ""
}

type Result struct {
	ID        string       `json:"id"`
	Status    Status       `json:"status"`
	Request   Request      `json:"-"`
	Lines     []LineResult `json:"lines"`
	Failed    int          `json:"failed"`
	Error     string       `json:"error,omitempty"`
	StartedAt time.Time    `json:"startedAt"`
	EndedAt   time.Time    `json:"endedAt"`
	Progress  int          `json:"progress"`
	Total     int          `json:"total"`

	done chan struct{}
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// Done reports whether the job has finished, successfully or not.
func (r *Result) Done() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

func (r *Result) snapshot() *Result {
	c := *r
	c.Lines = append([]LineResult(nil), r.Lines...)
	return &c
}

type Runner struct {
	mu      sync.RWMutex
	cond    *sync.Cond
	jobs    map[string]*Result
	order   []string
	queue   []Request
	nextID  int
	workers int
	closed  bool
	stopped chan struct{}
}

// New starts a runner. workers bounds how many lines of one job are
// evaluated at once; values below 1 mean runtime.NumCPU().
func New(workers int) *Runner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	r := &Runner{
		jobs:    make(map[string]*Result),
		workers: workers,
		stopped: make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	go r.run()
	return r
}

func (r *Runner) run() {
	defer close(r.stopped)
	for {
		req, ok := r.next()
		if !ok {
			return
		}
		r.process(req)
	}
}

// next blocks until a job is queued. It reports false once the runner is
// closed and the queue is empty.
func (r *Runner) next() (Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.queue) == 0 && !r.closed {
		r.cond.Wait()
	}
	if len(r.queue) == 0 {
		return Request{}, false
	}
	req := r.queue[0]
	r.queue = r.queue[1:]
	return req, true
}

type pending struct {
	line  int
	input string
}

func (r *Runner) process(req Request) {
	var work []pending
	for i, line := range req.Lines {
		if calc.Skip(line) {
			continue
		}
		work = append(work, pending{line: i + 1, input: line})
	}

	r.mu.Lock()
	result := r.jobs[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	result.Total = len(work)
	r.mu.Unlock()

	log.Infof("job %s: evaluating %d lines with %d workers", req.ID, len(work), r.workers)

	lines := make([]LineResult, len(work))
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, w := range work {
		g.Go(func() error {
			lines[i] = evaluate(w)
			r.mu.Lock()
			result.Progress++
			r.mu.Unlock()
			return nil
		})
	}
	g.Wait()

	failed := 0
	firstErr := ""
	for _, l := range lines {
		if !l.OK() {
			if failed == 0 {
				firstErr = fmt.Sprintf("line %d: %s", l.Line, l.Error)
			}
			failed++
			log.Debugf("job %s: line %d: %s", req.ID, l.Line, l.Error)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	result.EndedAt = time.Now()
	result.Lines = lines
	result.Failed = failed
	if failed > 0 && failed == len(lines) {
		result.Status = StatusFailed
		result.Error = firstErr
	} else {
		result.Status = StatusCompleted
	}
	close(result.done)

	log.Infof("job %s: %s, %d of %d lines failed", req.ID, result.Status, failed, len(lines))
}

func evaluate(w pending) LineResult {
	lr := LineResult{Line: w.line, Input: w.input}
	res, err := calc.Run(w.input)
	if err != nil {
		lr.Stage = calc.StageOf(err)
		lr.Error = err.Error()
		var stageErr *calc.Error
		if errors.As(err, &stageErr) {
			lr.Error = stageErr.Err.Error()
		}
		return lr
	}
	lr.Value = res.Value
	lr.Trace = res.Trace
	return lr
}

// Submit queues req and returns its ID. Jobs submitted after Close fail
// immediately.
func (r *Runner) Submit(req Request) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	req.ID = fmt.Sprintf("%d", r.nextID)
	req.CreatedAt = time.Now()

	result := &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
		done:    make(chan struct{}),
	}
	r.jobs[req.ID] = result
	r.order = append(r.order, req.ID)

	if r.closed {
		result.Status = StatusFailed
		result.Error = "runner closed"
		result.EndedAt = req.CreatedAt
		close(result.done)
		return req.ID
	}

	r.queue = append(r.queue, req)
	r.cond.Signal()
	return req.ID
}

// Get returns a copy of the job's current state.
func (r *Runner) Get(id string) (*Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	return result.snapshot(), true
}

// List returns copies of all jobs in submission order.
func (r *Runner) List() []*Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make([]*Result, 0, len(r.order))
	for _, id := range r.order {
		results = append(results, r.jobs[id].snapshot())
	}
	return results
}

// Wait blocks until the job finishes or ctx is done.
func (r *Runner) Wait(ctx context.Context, id string) (*Result, error) {
	r.mu.RLock()
	result, ok := r.jobs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown job %q", id)
	}

	select {
	case <-result.done:
		res, _ := r.Get(id)
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting work, finishes the queued jobs and waits for the
// background goroutine to exit.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()
	<-r.stopped
}
