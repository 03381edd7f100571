package engine

// TaskID identifies a scheduled task. The zero value is never issued.
type TaskID int

type taskKind int

const (
	taskOnce taskKind = iota
	taskRepeat
	taskFrame
)

type task struct {
	id       TaskID
	kind     taskKind
	due      float64 // scheduler time of the next firing, in ms
	interval float64
	fire     func(dtMs float64)
}

// Scheduler is a cooperative timer wheel driven by the frame loop. Time
// only moves when Advance is called, so every callback runs on the caller's
// goroutine and no two callbacks ever overlap.
type Scheduler struct {
	now    float64
	nextID TaskID
	tasks  []*task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock in milliseconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// After runs fn once, delayMs from now.
func (s *Scheduler) After(delayMs float64, fn func()) TaskID {
	return s.add(taskOnce, delayMs, func(float64) { fn() })
}

// Every runs fn each intervalMs until cancelled. A non-positive interval
// fires once per Advance.
func (s *Scheduler) Every(intervalMs float64, fn func()) TaskID {
	return s.add(taskRepeat, intervalMs, func(float64) { fn() })
}

// EveryFrame runs fn on every Advance with the frame's dt.
func (s *Scheduler) EveryFrame(fn func(dtMs float64)) TaskID {
	return s.add(taskFrame, 0, fn)
}

func (s *Scheduler) add(kind taskKind, interval float64, fn func(float64)) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, &task{
		id:       s.nextID,
		kind:     kind,
		due:      s.now + interval,
		interval: interval,
		fire:     fn,
	})
	return s.nextID
}

// Cancel removes a task. It reports whether the task was still live.
// Cancelling from inside a callback takes effect immediately, including for
// tasks later in the same Advance.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll removes every task.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

// Advance moves the clock by dtMs and runs everything that became due, in
// registration order. Tasks added during Advance first run on the next call.
// A repeating task that fell several intervals behind fires once per missed
// interval.
func (s *Scheduler) Advance(dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}
	s.now += dtMs

	snapshot := append([]*task(nil), s.tasks...)
	for _, t := range snapshot {
		switch t.kind {
		case taskFrame:
			if s.live(t.id) {
				t.fire(dtMs)
			}
		case taskOnce:
			if s.live(t.id) && t.due <= s.now {
				s.Cancel(t.id)
				t.fire(dtMs)
			}
		case taskRepeat:
			if t.interval <= 0 {
				if s.live(t.id) {
					t.fire(dtMs)
				}
				continue
			}
			for s.live(t.id) && t.due <= s.now {
				t.due += t.interval
				t.fire(dtMs)
			}
		}
	}
}

func (s *Scheduler) live(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}
