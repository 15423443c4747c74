// Package sched runs cooperative tasks on a fixed-step logical clock. Every
// suspension is an explicit Step returned by a task, so cancelling a Handle
// is a plain state change: a cancelled task is never resumed again.
package sched

import "time"

type stepKind uint8

const (
	stepYield stepKind = iota
	stepSleep
	stepUntil
	stepDone
)

// Step tells the scheduler when to resume a task.
type Step struct {
	kind stepKind
	d    time.Duration
}

// Yield resumes the task on the next tick.
func Yield() Step { return Step{kind: stepYield} }

// Sleep resumes the task on the first tick at least d after now.
func Sleep(d time.Duration) Step { return Step{kind: stepSleep, d: d} }

// Until resumes the task on the first tick at or after the absolute time t.
func Until(t time.Duration) Step { return Step{kind: stepUntil, d: t} }

// Done finishes the task.
func Done() Step { return Step{kind: stepDone} }

// Task is a resumable unit of work. Resume runs until the next suspension
// point and reports it.
type Task interface {
	Resume(now time.Duration) Step
}

// TaskFunc adapts a function to Task.
type TaskFunc func(now time.Duration) Step

func (f TaskFunc) Resume(now time.Duration) Step { return f(now) }

type task struct {
	name      string
	body      Task
	wake      time.Duration
	wakeTick  uint64
	cancelled bool
	done      bool
}

// Handle controls a spawned task.
type Handle struct {
	t *task
}

// Cancel stops the task. It takes effect immediately, including when called
// from inside another task during the same tick.
func (h *Handle) Cancel() {
	if h == nil || h.t == nil {
		return
	}
	h.t.cancelled = true
}

// Active reports whether the task is still scheduled.
func (h *Handle) Active() bool {
	return h != nil && h.t != nil && !h.t.cancelled && !h.t.done
}

func (h *Handle) Name() string {
	if h == nil || h.t == nil {
		return ""
	}
	return h.t.name
}

// Scheduler owns the logical clock and the task list. It is not safe for
// concurrent use; all simulation code runs on one goroutine.
type Scheduler struct {
	now   time.Duration
	ticks uint64
	tasks []*task
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the logical time of the current tick.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// Ticks returns how many ticks have run.
func (s *Scheduler) Ticks() uint64 {
	if s == nil {
		return 0
	}
	return s.ticks
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.done {
			n++
		}
	}
	return n
}

// Spawn schedules body to first resume according to first. A task spawned
// during a tick never runs in that same tick.
func (s *Scheduler) Spawn(name string, body Task, first Step) *Handle {
	if s == nil || body == nil {
		return nil
	}
	t := &task{name: name, body: body}
	if !s.apply(t, first) {
		return &Handle{t: t}
	}
	s.tasks = append(s.tasks, t)
	return &Handle{t: t}
}

// Go spawns fn to run from the next tick on.
func (s *Scheduler) Go(name string, fn TaskFunc) *Handle {
	return s.Spawn(name, fn, Yield())
}

// After runs fn once, d from now.
func (s *Scheduler) After(name string, d time.Duration, fn func()) *Handle {
	return s.Spawn(name, TaskFunc(func(time.Duration) Step {
		fn()
		return Done()
	}), Sleep(d))
}

// Every runs fn each interval until fn returns false. Wakeups are anchored
// to the previous scheduled time so a frame rate that does not divide the
// interval does not accumulate drift.
func (s *Scheduler) Every(name string, interval time.Duration, fn func(now time.Duration) bool) *Handle {
	if interval <= 0 {
		return s.Go(name, func(now time.Duration) Step {
			if !fn(now) {
				return Done()
			}
			return Yield()
		})
	}
	next := s.Now() + interval
	return s.Spawn(name, TaskFunc(func(now time.Duration) Step {
		if !fn(now) {
			return Done()
		}
		next += interval
		if next < now {
			next = now
		}
		return Until(next)
	}), Until(next))
}

// Tick advances the clock by dt and resumes every due task in spawn order.
func (s *Scheduler) Tick(dt time.Duration) {
	if s == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.ticks++
	s.now += dt

	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.cancelled || t.done {
			continue
		}
		if s.ticks < t.wakeTick || s.now < t.wake {
			continue
		}
		step := t.body.Resume(s.now)
		if t.cancelled {
			continue
		}
		s.apply(t, step)
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled && !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// apply records the next wakeup and reports whether the task is still live.
func (s *Scheduler) apply(t *task, step Step) bool {
	t.wakeTick = s.ticks + 1
	switch step.kind {
	case stepDone:
		t.done = true
		return false
	case stepSleep:
		t.wake = s.now + step.d
	case stepUntil:
		t.wake = step.d
	default:
		t.wake = s.now
	}
	return true
}
