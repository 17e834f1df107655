// Package converter implements C7, the batch converter contract: taking
// an assembled BatchChange and handing it to persistence and per-change
// processing. The core only depends on the Converter interface; this
// package's asyncConverter is one concrete implementation, backed by a
// worker queue adapted from the teacher's generic internal/pool.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/pool"
	"github.com/hydrabatch/hydrabatch/internal/repo"
)

// ConversionResult reports the outcome of handing a batch to the
// converter: persistence succeeded and change work has been enqueued.
type ConversionResult struct {
	BatchChange model.BatchChange
	Enqueued    int
}

// Converter is C7's external contract: sendBatchForProcessing. The core
// awaits this call and treats any error as terminal.
type Converter interface {
	SendBatchForProcessing(
		ctx context.Context,
		batch model.BatchChange,
		zones repo.ExistingZones,
		recordSets repo.ExistingRecordSets,
	) (ConversionResult, error)
}

// changeTask is the unit of per-change work handed to a worker. Tasks
// are pooled and reset between uses to avoid an allocation per change
// in high-volume batches, following the teacher's internal/pool pattern.
type changeTask struct {
	batchID string
	change  model.SingleChange
	zone    model.Zone
}

func (t *changeTask) reset() {
	t.batchID = ""
	t.change = model.SingleChange{}
	t.zone = model.Zone{}
}

// asyncConverter persists the batch synchronously, then queues every
// per-change task for a fixed worker pool and returns once the workers
// have drained the queue. Each worker only logs the enqueued change;
// no change is applied to DNS or to the record-set store here, matching
// §4.7's "awaits this call... responsible for persisting the batch and
// enqueueing per-change work" (enqueue, not apply-to-completion).
type asyncConverter struct {
	batches repo.BatchChangeRepository
	workers int
	tasks   *pool.Pool[*changeTask]
}

// NewAsyncConverter builds a Converter backed by batches for persistence
// and workers concurrent goroutines for per-change enqueue fan-out.
func NewAsyncConverter(batches repo.BatchChangeRepository, workers int) Converter {
	if workers < 1 {
		workers = 1
	}
	return &asyncConverter{
		batches: batches,
		workers: workers,
		tasks: pool.New(func() *changeTask {
			return &changeTask{}
		}),
	}
}

func (c *asyncConverter) SendBatchForProcessing(
	ctx context.Context,
	batch model.BatchChange,
	zones repo.ExistingZones,
	recordSets repo.ExistingRecordSets,
) (ConversionResult, error) {
	saved, err := c.batches.Save(ctx, batch)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("converter: save batch %s: %w", batch.ID, err)
	}

	zoneByID := make(map[string]model.Zone, len(zones.All()))
	for _, z := range zones.All() {
		zoneByID[z.ID] = z
	}

	queue := make(chan *changeTask, len(saved.Changes))
	for _, ch := range saved.Changes {
		task := c.tasks.Get()
		task.reset()
		task.batchID = saved.ID
		task.change = ch
		task.zone = zoneByID[ch.ZoneID]
		queue <- task
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.runWorker(ctx, queue)
		}()
	}
	wg.Wait()

	return ConversionResult{BatchChange: saved, Enqueued: len(saved.Changes)}, nil
}

func (c *asyncConverter) runWorker(ctx context.Context, queue <-chan *changeTask) {
	for task := range queue {
		select {
		case <-ctx.Done():
			c.tasks.Put(task)
			continue
		default:
		}

		slog.Info("batch change enqueued",
			"batch_id", task.batchID,
			"zone_id", task.change.ZoneID,
			"zone_name", task.zone.Name,
			"change_type", task.change.Input.ChangeType,
			"record_type", task.change.Input.Type,
		)

		c.tasks.Put(task)
	}
}
