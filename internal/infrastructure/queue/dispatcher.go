package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lendly/rental-marketplace/internal/api/metrics"
	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes contract audit events to a fixed set of workers sharded
// on the contract id, guaranteeing per-contract audit ordering. Recording is
// fire-and-forget: a full channel or a failed insert never fails the request
// that produced the event.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit event on the worker responsible for its contract.
// Events are dropped (with a log line) when the worker channel is full.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.ContractID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Int64("contract_id", event.ContractID).
			Str("action", event.Action).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a contract id deterministically to a worker index.
func (d *Dispatcher) shardIndex(contractID int64) int {
	if contractID < 0 {
		contractID = -contractID
	}
	return int(contractID % int64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &event); err != nil {
				metrics.AuditErrorsTotal.Inc()
				d.log.Error().Err(err).
					Int64("contract_id", event.ContractID).
					Int("worker_id", id).
					Msg("audit event insert failed")
				continue
			}
			metrics.AuditEventsWrittenTotal.WithLabelValues(event.Action).Inc()
		}
	}
}
