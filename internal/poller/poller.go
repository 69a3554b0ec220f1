// Package poller refreshes the remote catalog on a fixed interval.
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Syncer interface {
	Sync(ctx context.Context) (int, error)
}

type Poller struct {
	syncer   Syncer
	interval time.Duration
	log      *zap.Logger
}

func NewPoller(syncer Syncer, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{syncer: syncer, interval: interval, log: logger.Named("poller")}
}

// Run blocks until ctx is done. A non-positive interval disables polling.
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.syncOnce(ctx)
		}
	}
}

func (p *Poller) syncOnce(ctx context.Context) {
	n, err := p.syncer.Sync(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn("catalog sync failed", zap.Error(err))
		return
	}
	p.log.Info("catalog synced", zap.Int("items", n))
}
