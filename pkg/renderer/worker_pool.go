package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// RowTask asks a worker to shade one image row
type RowTask struct {
	Row int
}

// RowResult contains the statistics of a shaded row
type RowResult struct {
	Row   int
	Stats RenderStats
	Error error
}

// WorkerPool shades rows in parallel. Queries on a balanced photon map are
// read-only and rows write disjoint ranges of the pixel buffer.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker shades rows taken from the task queue
type Worker struct {
	ID          int
	raytracer   *Raytracer
	pixels      []core.Vec3
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(rt *Raytracer, pixels []core.Vec3, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rt.height),   // Buffer for all rows
		resultQueue: make(chan RowResult, rt.height), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			pixels:      pixels,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for submitted rows to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a row
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats, err := w.raytracer.renderRow(task.Row, w.pixels)
		w.resultQueue <- RowResult{Row: task.Row, Stats: stats, Error: err}
	}
}
