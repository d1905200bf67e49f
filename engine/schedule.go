package engine

import "time"

type task struct {
	at  time.Time
	run func()
}

// taskQueue is an explicit (time, action) list drained at the top of each
// tick, replacing engine timers for hitbox expiry and cooldown resets.
type taskQueue struct {
	tasks []task
}

func (q *taskQueue) After(at time.Time, run func()) {
	q.tasks = append(q.tasks, task{at: at, run: run})
}

// Drain runs every task due at or before now, in insertion order. Due
// tasks are detached before running so a task scheduling further work
// does not corrupt the walk.
func (q *taskQueue) Drain(now time.Time) {
	var due []func()
	rest := q.tasks[:0]
	for _, t := range q.tasks {
		if t.at.After(now) {
			rest = append(rest, t)
		} else {
			due = append(due, t.run)
		}
	}
	q.tasks = rest
	for _, run := range due {
		run()
	}
}

// Discard drops all pending tasks without firing them.
func (q *taskQueue) Discard() {
	q.tasks = nil
}
