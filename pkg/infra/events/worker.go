package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=Dispatcher --dir=. --output=./mocks --filename=dispatcher_mock.go --case=underscore --with-expecter
type Dispatcher interface {
	StartWorkers(n int)
	Dispatch(evt *decision.Event)
	Shutdown()
}

type worker struct {
	logger    *logrus.Logger
	exporters []decision.Exporter
	taskChan  chan *decision.Event
	timeout   time.Duration
	wg        sync.WaitGroup
	// mu guards closed and the send on taskChan against its close.
	mu        sync.RWMutex
	closed    bool
	dropped   atomic.Int64
	closeOnce sync.Once
}

// NewWorker returns a Dispatcher that delivers events to every exporter from
// a pool of goroutines. bufferSize bounds the queue; events beyond it are
// dropped so that callers never block.
func NewWorker(logger *logrus.Logger, exporters []decision.Exporter, bufferSize int) Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &worker{
		logger:    logger,
		exporters: exporters,
		taskChan:  make(chan *decision.Event, bufferSize),
		timeout:   5 * time.Second,
	}
}

func (w *worker) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	w.logger.WithField("workers", n).Info("starting decision event workers")
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for evt := range w.taskChan {
				w.export(evt)
			}
		}()
	}
}

func (w *worker) Dispatch(evt *decision.Event) {
	if len(w.exporters) == 0 {
		return
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.taskChan <- evt:
	default:
		w.dropped.Add(1)
		w.logger.WithFields(logrus.Fields{
			"identity": evt.IdentityKey,
			"outcome":  evt.Outcome,
		}).Warn("decision event queue is full, dropping event")
	}
}

// Shutdown stops accepting events, drains the queue and closes the exporters.
func (w *worker) Shutdown() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.taskChan)
		w.mu.Unlock()
		w.logger.Info("shutting down decision event workers")
		w.wg.Wait()
		for _, exp := range w.exporters {
			exp.Close()
		}
		w.logger.WithField("dropped", w.dropped.Load()).Info("decision event workers stopped")
	})
}

func (w *worker) export(evt *decision.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, exp := range w.exporters {
		g.Go(func() error {
			if err := exp.Handle(gctx, evt); err != nil {
				return fmt.Errorf("%s: %w", exp.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.logger.WithFields(logrus.Fields{
			"event_id": evt.ID,
			"outcome":  evt.Outcome,
		}).WithError(err).Error("exporter failed")
	}
}
