package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type DispatcherConfig struct {
	// Timeout bounds each send.
	Timeout time.Duration
	// BroadcastRate caps bulk sends per second.
	BroadcastRate float64
	Meter         metric.Meter
}

// Dispatcher sends messages in the background. Failures are logged and
// counted, never retried.
type Dispatcher struct {
	sender   Sender
	timeout  time.Duration
	limiter  *rate.Limiter
	log      *zap.Logger
	failures metric.Int64Counter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, cfg DispatcherConfig, logger *zap.Logger) (*Dispatcher, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BroadcastRate <= 0 {
		cfg.BroadcastRate = 25
	}
	if cfg.Meter == nil {
		cfg.Meter = otel.Meter("storebot/notify")
	}

	failures, err := cfg.Meter.Int64Counter("storebot.outbound.failures",
		metric.WithDescription("Outbound messages that could not be delivered"),
		metric.WithUnit("{message}"))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		sender:   sender,
		timeout:  cfg.Timeout,
		limiter:  rate.NewLimiter(rate.Limit(cfg.BroadcastRate), 1),
		log:      logger.Named("dispatcher"),
		failures: failures,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Dispatch returns immediately. Direct replies go out in order on one
// goroutine; broadcasts follow on another, throttled.
func (d *Dispatcher) Dispatch(msgs []domain.Outbound) {
	var direct, bulk []domain.Outbound
	for _, m := range msgs {
		if m.Broadcast {
			bulk = append(bulk, m)
		} else {
			direct = append(direct, m)
		}
	}

	if len(direct) > 0 {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for _, m := range direct {
				d.deliver(m)
			}
		}()
	}
	if len(bulk) > 0 {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for i, m := range bulk {
				if err := d.limiter.Wait(d.ctx); err != nil {
					d.log.Warn("broadcast aborted", zap.Int("remaining", len(bulk)-i), zap.Error(err))
					return
				}
				d.deliver(m)
			}
		}()
	}
}

func (d *Dispatcher) deliver(m domain.Outbound) {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, m); err != nil {
		d.log.Warn("outbound send failed",
			zap.Int64("chat_id", m.ChatID),
			zap.Bool("broadcast", m.Broadcast),
			zap.Error(err))
		d.failures.Add(ctx, 1, metric.WithAttributes(attribute.Bool("broadcast", m.Broadcast)))
	}
}

// Close waits for in-flight sends until ctx ends, then aborts the rest.
func (d *Dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}
