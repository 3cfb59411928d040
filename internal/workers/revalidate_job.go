// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

// RevalidateJob asks a Revalidator for a fresh snapshot on a ticker. It backs
// up focus revalidation for clients that stay in the foreground for hours.
type RevalidateJob struct {
	target   Revalidator
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRevalidateJob creates a RevalidateJob for target. The job is idle until
// Run is called. A zero interval disables it; a negative one falls back to
// [config.DefaultRevalidateInterval].
func NewRevalidateJob(target Revalidator, cfg config.ClientWorkers, log *logger.Logger) *RevalidateJob {
	interval := cfg.RevalidateInterval
	if interval < 0 {
		interval = config.DefaultRevalidateInterval
	}
	return &RevalidateJob{
		target:   target,
		interval: interval,
		logger:   log.WithComponent("revalidate_job"),
	}
}

// Run implements Worker. It stops any previously running ticker, then
// launches a goroutine that calls Revalidate every interval until ctx is
// cancelled or Stop is called.
func (j *RevalidateJob) Run(ctx context.Context) {
	j.Stop()
	if j.interval == 0 {
		j.logger.Debug().Msg("periodic revalidation disabled")
		return
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.target.Revalidate()
			}
		}
	}()
}

// Stop implements Worker. It cancels the ticker goroutine and blocks until it
// has exited.
func (j *RevalidateJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
