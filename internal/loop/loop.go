// Package loop drives the collect, rank, record, publish cycle at the
// configured cadence until the context is cancelled.
package loop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spmon/internal/model"
	"spmon/internal/rank"
	"spmon/internal/record"
)

// Collector produces one sample plus process snapshots per call. Collect
// is expected to block for Window while measuring I/O rates.
type Collector interface {
	Prime()
	Window() time.Duration
	Collect() (model.Sample, []model.ProcessSnapshot, error)
}

// Loop owns the single writer goroutine. Completed cycles are published
// on Cycles for whichever presenter is attached.
type Loop struct {
	collector Collector
	recorder  record.Recorder
	interval  time.Duration
	topN      int
	log       *slog.Logger
	out       chan model.Cycle
}

func New(c Collector, r record.Recorder, interval time.Duration, topN int, log *slog.Logger) *Loop {
	return &Loop{
		collector: c,
		recorder:  r,
		interval:  interval,
		topN:      topN,
		log:       log,
		out:       make(chan model.Cycle, 1),
	}
}

// Cycles delivers each completed cycle in order. Closed when Run returns.
func (l *Loop) Cycles() <-chan model.Cycle { return l.out }

// Run blocks until ctx is cancelled (returns nil) or a cycle fails
// (returns the error). Each cycle costs at least the collector's
// measurement window; the remaining wait is interval minus window,
// clamped at zero, so short intervals run cycles back to back.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.out)

	if err := l.recorder.EnsureSchema(); err != nil {
		return fmt.Errorf("preparing log: %w", err)
	}
	l.collector.Prime()
	l.log.Debug("loop started", "interval", l.interval, "top_n", l.topN)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		sample, procs, err := l.collector.Collect()
		if err != nil {
			return fmt.Errorf("collecting sample: %w", err)
		}
		cycle := model.Cycle{Sample: sample, Top: rank.All(procs, l.topN)}

		if err := l.recorder.Append(cycle); err != nil {
			return fmt.Errorf("recording sample: %w", err)
		}

		select {
		case l.out <- cycle:
		case <-ctx.Done():
			return nil
		}

		wait := l.interval - l.collector.Window()
		if wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil
			}
		}
	}
}
