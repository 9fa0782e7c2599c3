package tracer

import (
	"runtime"
	"sync"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
)

// EmissionChunkSize is the number of photons traced per emission task
var EmissionChunkSize = 1 << 12

// EmissionTask is a chunk of the photon budget traced with its own sampler
type EmissionTask struct {
	TaskID int   // Also the merge position, for deterministic ordering
	Count  int   // Photons to emit
	Seed   int64 // Seed for this task's sampler
	Limit  int   // Most photons this task may deposit
}

// EmissionResult holds the photons deposited by one task
type EmissionResult struct {
	TaskID  int
	Photons []photonmap.Photon
	Stats   TraceStats
}

// photonBuffer collects photons for a later merge into the shared map
type photonBuffer struct {
	photons []photonmap.Photon
	limit   int
}

func (b *photonBuffer) Store(position, power, direction core.Vec3) bool {
	if len(b.photons) >= b.limit {
		return false
	}
	b.photons = append(b.photons, photonmap.NewPhoton(position, power, direction))
	return true
}

// WorkerPool traces emission chunks in parallel. Each chunk gets its own
// sampler and buffer, and buffers are merged in chunk order, so the photon map
// does not depend on the number of workers.
type WorkerPool struct {
	tracer      *Tracer
	taskQueue   chan EmissionTask
	resultQueue chan EmissionResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool with numWorkers workers, or runtime.NumCPU() when numWorkers <= 0
func NewWorkerPool(tracer *Tracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		tracer:     tracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// EmitPhotons traces count photons across the workers and merges the deposits into pm
func (wp *WorkerPool) EmitPhotons(pm *photonmap.PhotonMap, count int) (TraceStats, error) {
	if err := wp.tracer.checkEmission(pm, count); err != nil {
		return TraceStats{}, err
	}

	tasks := wp.tracer.splitBudget(count, pm.Capacity()-pm.Count())
	wp.taskQueue = make(chan EmissionTask, len(tasks))
	wp.resultQueue = make(chan EmissionResult, len(tasks))

	for i := 0; i < min(wp.numWorkers, len(tasks)); i++ {
		wp.wg.Add(1)
		go wp.run(i)
	}
	for _, task := range tasks {
		wp.taskQueue <- task
	}
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)

	results := make([]EmissionResult, len(tasks))
	for result := range wp.resultQueue {
		results[result.TaskID] = result
	}

	stats := mergeResults(pm, results)
	wp.tracer.finish(pm, stats)
	return stats, nil
}

func (wp *WorkerPool) run(workerID int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		result := wp.tracer.runTask(task)
		wp.tracer.logger.Printf("Worker %d: task %d traced %d photons, %d stored", workerID, task.TaskID, task.Count, len(result.Photons))
		wp.resultQueue <- result
	}
}
