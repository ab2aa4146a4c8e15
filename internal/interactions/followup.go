package interactions

import (
	"context"
	"fmt"
	"sync"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// FollowUp is an outbound call made after the interaction response has been
// sent. Failures are logged and counted, never retried.
type FollowUp struct {
	Name string
	Run  func(ctx context.Context) error
}

// FollowUps runs follow-up calls in the background.
type FollowUps struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewFollowUps(timeout time.Duration) *FollowUps {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FollowUps{timeout: timeout}
}

// Schedule starts calls in the background. They keep ctx's values but not
// its cancellation, since the request that produced them ends first.
func (f *FollowUps) Schedule(ctx context.Context, calls ...FollowUp) {
	base := context.WithoutCancel(ctx)
	for _, call := range calls {
		f.wg.Add(1)
		go func(call FollowUp) {
			defer f.wg.Done()

			ctx, cancel := context.WithTimeout(base, f.timeout)
			defer cancel()

			if err := f.run(ctx, call); err != nil {
				FollowUpFailures.WithLabelValues(call.Name).Inc()
				slogctx.Error(ctx, "follow-up call failed", "call", call.Name, "error", err)
				return
			}
			slogctx.Debug(ctx, "follow-up call done", "call", call.Name)
		}(call)
	}
}

func (f *FollowUps) run(ctx context.Context, call FollowUp) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return call.Run(ctx)
}

// Wait blocks until every scheduled call returned or ctx is done.
func (f *FollowUps) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
