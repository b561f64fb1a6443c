package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ScanlineTask represents a row rendering task for the worker pool
type ScanlineTask struct {
	Row int
}

// ScanlineResult contains the result from rendering a row
type ScanlineResult struct {
	Row     int
	Pixels  []core.Color
	Samples int
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline tasks
type Worker struct {
	ID          int
	renderer    *ScanlineRenderer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(renderer *ScanlineRenderer, numRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, numRows),   // Buffer for every row
		resultQueue: make(chan ScanlineResult, numRows), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Workers skip remaining tasks once ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop waits for queued tasks to drain and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline, in completion order
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			continue
		}

		pixels, samples := w.renderer.RenderRow(task.Row)
		w.resultQueue <- ScanlineResult{
			Row:     task.Row,
			Pixels:  pixels,
			Samples: samples,
		}
	}
}

// reorderBuffer holds out-of-order scanlines until the next expected row arrives
type reorderBuffer struct {
	next    int
	pending map[int]ScanlineResult
}

func newReorderBuffer() *reorderBuffer {
	return &reorderBuffer{pending: make(map[int]ScanlineResult)}
}

// push stores result and returns every row that is now ready, in raster order
func (rb *reorderBuffer) push(result ScanlineResult) []ScanlineResult {
	rb.pending[result.Row] = result

	var ready []ScanlineResult
	for {
		row, ok := rb.pending[rb.next]
		if !ok {
			return ready
		}
		delete(rb.pending, rb.next)
		ready = append(ready, row)
		rb.next++
	}
}
