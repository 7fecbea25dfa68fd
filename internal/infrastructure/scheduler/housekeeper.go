package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a periodic maintenance task
type Job struct {
	Name     string
	Interval time.Duration
	// RunOnStart runs the job once before the first tick
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Housekeeper runs maintenance jobs on their own tickers
type Housekeeper struct {
	jobs   []Job
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	runs      map[string]int
}

// NewHousekeeper creates a housekeeper. Jobs without a Run function or
// with a non-positive interval are rejected.
func NewHousekeeper(logger *zap.Logger, jobs ...Job) (*Housekeeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, j := range jobs {
		if j.Run == nil || j.Interval <= 0 || j.Name == "" {
			return nil, ErrInvalidConfig
		}
	}
	return &Housekeeper{
		jobs:   jobs,
		logger: logger,
		runs:   make(map[string]int, len(jobs)),
	}, nil
}

// Start launches one goroutine per job. Calling it twice is a no-op.
func (h *Housekeeper) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.isRunning {
		h.mu.Unlock()
		return nil
	}
	h.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.mu.Unlock()

	for _, j := range h.jobs {
		h.wg.Add(1)
		go h.runLoop(ctx, j)
	}

	h.logger.Info("Housekeeper started", zap.Int("jobs", len(h.jobs)))
	return nil
}

// Stop cancels the jobs and waits for them, bounded by ctx
func (h *Housekeeper) Stop(ctx context.Context) error {
	h.mu.Lock()
	if !h.isRunning {
		h.mu.Unlock()
		return nil
	}
	h.isRunning = false
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.logger.Info("Housekeeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Runs returns how many times the named job has completed
func (h *Housekeeper) Runs(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.runs[name]
}

func (h *Housekeeper) runLoop(ctx context.Context, j Job) {
	defer h.wg.Done()

	if j.RunOnStart {
		h.execute(ctx, j)
	}

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.execute(ctx, j)
		}
	}
}

func (h *Housekeeper) execute(ctx context.Context, j Job) {
	start := time.Now()
	err := j.Run(ctx)

	h.mu.Lock()
	h.runs[j.Name]++
	h.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Warn("Housekeeping job failed",
			zap.String("job", j.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	h.logger.Debug("Housekeeping job finished",
		zap.String("job", j.Name),
		zap.Duration("elapsed", time.Since(start)))
}
