package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Task is one scheduled callback. A positive Interval re-arms the task
// after each run.
type Task struct {
	ID       int64
	RunAt    time.Time
	Interval time.Duration
	Fn       func()
	index    int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].RunAt.Before(q[j].RunAt)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*Task)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Manager runs scheduled tasks off a coarse 100ms tick.
type Manager struct {
	queue   taskQueue
	mutex   sync.Mutex
	nextID  int64
	trigger chan *Task
	stop    chan struct{}
}

func NewManager() *Manager {
	m := &Manager{
		queue:   make(taskQueue, 0),
		trigger: make(chan *Task, 1000),
		nextID:  1,
		stop:    make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.run()
	return m
}

// Schedule queues fn to run after delay, then every interval if interval
// is positive. Returns the task id for cancellation.
func (m *Manager) Schedule(delay, interval time.Duration, fn func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &Task{
		ID:       m.nextID,
		RunAt:    time.Now().Add(delay),
		Interval: interval,
		Fn:       fn,
	}
	m.nextID++

	heap.Push(&m.queue, task)
	return task.ID
}

func (m *Manager) Cancel(taskID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, task := range m.queue {
		if task.ID == taskID {
			heap.Remove(&m.queue, i)
			break
		}
	}
}

func (m *Manager) Stop() {
	close(m.stop)
}

func (m *Manager) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()

			for m.queue.Len() > 0 {
				task := m.queue[0]
				if task.RunAt.After(now) {
					break
				}

				heap.Pop(&m.queue)
				m.trigger <- task

				if task.Interval > 0 {
					task.RunAt = now.Add(task.Interval)
					heap.Push(&m.queue, task)
				}
			}
			m.mutex.Unlock()

		case task := <-m.trigger:
			go task.Fn()

		case <-m.stop:
			return
		}
	}
}
