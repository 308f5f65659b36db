package renderer

import (
	"fmt"
	"runtime"
	"sync"
)

// Task is a unit of work for the worker pool. Tasks run to completion.
type Task func() error

// WorkerPool runs tasks on a fixed number of goroutines
type WorkerPool struct {
	taskQueue  chan Task
	numWorkers int
	workers    sync.WaitGroup // running worker goroutines
	pending    sync.WaitGroup // submitted tasks not yet finished

	mu       sync.Mutex
	firstErr error
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize tasks can be submitted before Submit blocks.
func NewWorkerPool(numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkerPool{
		taskQueue:  make(chan Task, queueSize),
		numWorkers: numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.workers.Add(1)
		go wp.run()
	}
}

// Submit enqueues a task. It blocks while the queue is full.
func (wp *WorkerPool) Submit(task Task) {
	wp.pending.Add(1)
	wp.taskQueue <- task
}

// Wait blocks until every submitted task has finished and returns the first
// error any of them reported since the last Wait
func (wp *WorkerPool) Wait() error {
	wp.pending.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	err := wp.firstErr
	wp.firstErr = nil
	return err
}

// Stop gracefully shuts down all workers. No tasks may be submitted afterwards.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.workers.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.workers.Done()

	for task := range wp.taskQueue {
		if err := execute(task); err != nil {
			wp.mu.Lock()
			if wp.firstErr == nil {
				wp.firstErr = err
			}
			wp.mu.Unlock()
		}
		wp.pending.Done()
	}
}

// execute runs a task, turning a panic into an error
func execute(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker task panicked: %v", r)
		}
	}()
	return task()
}
