// Package thread implements component J, the Thread controller: a
// registry of background tasks spawned by `Async`/`Run`, id assignment,
// cooperative cancellation, and `JoinThread`/`StopAll` (spec.md §4.J,
// §5).
//
// The teacher has no equivalent async-task system (DWScript scripts run
// to completion on the caller's goroutine), so this package is grounded
// directly on spec.md §4.J/§5's own description: "parallel OS threads
// managed by the Thread controller... each task owns a cancellation flag
// and, by convention, its own writable slots in the exec-path map keyed
// by task id." Go's goroutines plus a context.Context-shaped cancellation
// token are the idiomatic fit the other example repos (ethereum's
// goroutine-per-task event loops, sentra's worker pools) both reach for.
package thread

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cantus-lang/cantus/internal/value"
)

// ErrCancelled is returned from a task body (or JoinThread) when the
// task's cancellation token was tripped before or during execution
// (spec.md §7: the `Cancelled` error kind).
var ErrCancelled = errors.New("Cancelled")

// ErrUnknownTask is returned by KillThread/JoinThread for an id not (or
// no longer) in the registry.
var ErrUnknownTask = errors.New("unknown task id")

// Token is the per-task cancellation flag a running interpreter polls
// "between statements and before each iteration of a counted loop"
// (spec.md §5).
type Token struct {
	cancelled atomic.Bool
}

// Cancel trips the token; subsequent Cancelled() calls report true.
func (t *Token) Cancel() { t.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool { return t.cancelled.Load() }

// Task is one registered background task: its cancellation token, the
// directory/path it's executing (`exec_dir`/`exec_path` of spec.md
// §4.I), and its eventual result.
type Task struct {
	ID    string
	Token *Token
	Path  string

	done   chan struct{}
	mu     sync.Mutex
	result value.Value
	err    error
}

func newTask(path string) *Task {
	return &Task{ID: uuid.NewString(), Token: &Token{}, Path: path, done: make(chan struct{})}
}

func (t *Task) finish(result value.Value, err error) {
	t.mu.Lock()
	t.result, t.err = result, err
	t.mu.Unlock()
	close(t.done)
}

// Controller is the shared registry of spec.md §4.J/§5: task id -> Task
// handle, guarded by its own mutex (distinct from the scope Registry's
// lock — a task's bookkeeping and the variables it touches are separate
// shared resources per spec.md §5).
type Controller struct {
	mu    sync.Mutex
	tasks map[string]*Task
}

// NewController creates an empty task registry.
func NewController() *Controller {
	return &Controller{tasks: map[string]*Task{}}
}

// Spawn registers a new task running fn on its own goroutine and returns
// its id immediately — the shape `Async` (spec.md §4.G/§4.J) and `Run`
// (spec.md §4.J) both build on. fn receives the Token it must poll
// cooperatively and should return ErrCancelled (or let a polled
// cancellation bubble up) once Cancelled() is observed.
func (c *Controller) Spawn(path string, fn func(tok *Token) (value.Value, error)) *Task {
	t := newTask(path)
	c.mu.Lock()
	c.tasks[t.ID] = t
	c.mu.Unlock()

	go func() {
		result, err := fn(t.Token)
		t.finish(result, err)
	}()
	return t
}

// Lookup returns the registered task by id: a running task, or a finished
// one that has not been joined yet.
func (c *Controller) Lookup(id string) (*Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tasks[id]
	return t, ok
}

// Kill cancels the task cooperatively: the next statement boundary or
// loop iteration it polls will observe Token.Cancelled() (spec.md §4.J:
// "`KillThread(id)` cancels cooperatively"). Already-finished or unknown
// ids are not an error — cancelling a task that has already completed is
// a no-op, matching the "release is guaranteed on normal return" promise
// of spec.md §5.
func (c *Controller) Kill(id string) error {
	t, ok := c.Lookup(id)
	if !ok {
		return nil
	}
	t.Token.Cancel()
	return nil
}

// Join blocks until the task with id completes and returns its result
// (spec.md §4.J: "`JoinThread(id)` blocks"). A finished task stays in
// the registry until it is joined — Spawn's goroutine no longer deletes
// it the instant fn returns, since Join is normally called after
// completion, not racing it — so Join reaps the entry itself once it
// has read the result, rather than leaving every joined task in the
// registry forever.
func (c *Controller) Join(id string) (value.Value, error) {
	t, ok := c.Lookup(id)
	if !ok {
		return value.Undef, ErrUnknownTask
	}
	<-t.done
	t.mu.Lock()
	result, err := t.result, t.err
	t.mu.Unlock()

	c.mu.Lock()
	delete(c.tasks, id)
	c.mu.Unlock()

	return result, err
}

// StopAll cancels every registered task whose id is not except (spec.md
// §4.J: "`StopAll(except)` cancels every task whose id ≠ except"). The
// cancellations themselves fan out through an errgroup rather than a
// plain loop so a large task set doesn't serialize behind Token.Cancel's
// atomic store one task at a time (SPEC_FULL.md §4.F.1: "StopAll fans
// cancellation out with errgroup").
func (c *Controller) StopAll(except string) {
	c.mu.Lock()
	tokens := make([]*Token, 0, len(c.tasks))
	for id, t := range c.tasks {
		if id == except {
			continue
		}
		tokens = append(tokens, t.Token)
	}
	c.mu.Unlock()

	var g errgroup.Group
	for _, tok := range tokens {
		tok := tok
		g.Go(func() error {
			tok.Cancel()
			return nil
		})
	}
	_ = g.Wait()
}
