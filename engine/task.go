package engine

import (
	"errors"
	"sync"

	"othello-engine/othello"
)

var (
	ErrSearchInProgress = errors.New("a search is already running")
	ErrNoSearch         = errors.New("no search running")
)

// Task is the handle of one search running on its own goroutine.
type Task struct {
	stop   *Token
	done   chan struct{}
	result Result
	err    error
}

// StartTask launches a search of p on a new goroutine. The goroutine gets its
// own copy of the position and the weights.
func StartTask(p othello.Position, depth int, w *Weights, stop *Token) *Task {
	if stop == nil {
		stop = &Token{}
	}
	if w == nil {
		w = &DefaultWeights
	}
	weights := *w
	t := &Task{stop: stop, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = NewSearcher(&weights, stop).BestMove(p, depth)
	}()
	return t
}

// Done reports without blocking whether the search has returned.
func (t *Task) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the search returns.
func (t *Task) Wait() (Result, error) {
	<-t.done
	return t.result, t.err
}

// Stop cancels the search, waits for it to unwind and re-arms the token.
// A search that finished before the signal keeps its own result.
func (t *Task) Stop() (Result, error) {
	t.stop.Cancel()
	<-t.done
	t.stop.Reset()
	return t.result, t.err
}

// Runner allows at most one outstanding search at a time. The zero value is
// ready to use with DefaultWeights.
type Runner struct {
	Weights *Weights

	mu   sync.Mutex
	stop Token
	task *Task
}

// Start launches a search and returns its handle, or fails with
// ErrSearchInProgress when the previous one has not been collected by Poll,
// Collect, Wait or Stop. Callers that deliver the result themselves should
// hold on to the handle and pass it to Collect.
func (r *Runner) Start(p othello.Position, depth int) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task != nil {
		return nil, ErrSearchInProgress
	}
	r.task = StartTask(p, depth, r.Weights, &r.stop)
	return r.task, nil
}

// Busy reports whether a search is outstanding.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.task != nil
}

// Poll collects a finished search. ready is false while it is still running.
func (r *Runner) Poll() (res Result, ready bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task == nil {
		return Result{Cell: othello.NoCell}, false, ErrNoSearch
	}
	if !r.task.Done() {
		return Result{Cell: othello.NoCell}, false, nil
	}
	res, err = r.task.Wait()
	r.task = nil
	return res, true, err
}

// Wait blocks until the outstanding search returns and collects it.
func (r *Runner) Wait() (Result, error) {
	r.mu.Lock()
	t := r.task
	r.mu.Unlock()
	if t == nil {
		return Result{Cell: othello.NoCell}, ErrNoSearch
	}
	return r.Collect(t)
}

// Collect blocks until t returns and frees the runner if t is still its
// outstanding search. A task that was stopped, or replaced after a stop,
// leaves the runner alone and reports its own outcome.
func (r *Runner) Collect(t *Task) (Result, error) {
	res, err := t.Wait()
	r.mu.Lock()
	if r.task == t {
		r.task = nil
	}
	r.mu.Unlock()
	return res, err
}

// Stop cancels the outstanding search, if any, and blocks until it has
// unwound. Its result is discarded.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task == nil {
		return
	}
	r.task.Stop()
	r.task = nil
}
