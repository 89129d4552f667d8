// Package worker hosts the background loops that advance purchase and slot
// state when no request traffic does it: hold timeouts, validity expiry,
// and closing slots whose window has passed.
package worker

import (
	"context"
	"log/slog"
	"time"

	"examgate/internal/pkg/clock"
	"examgate/internal/usecase/shared"
)

// Sweeper runs the periodic expiration pass. Every transition it makes is
// a conditional bulk statement, so overlapping runs and restarts are safe:
// a row already moved by a competing pass simply does not match the guard.
type Sweeper struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(uow shared.UnitOfWork, clk clock.Clock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		uow:      uow,
		clock:    clk,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately; the loop runs
// until Stop is called.
func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			if err := s.SweepOnce(ctx); err != nil {
				slog.Error("sweep pass failed", "error", err)
			}
			cancel()
		}
	}
}

// SweepOnce runs one full pass: cancel hold-expired purchases, expire
// validity-passed vouchers (both hand their capacity back to the owning
// slots), and close slots whose window has ended.
// Exported so tests and an operator CLI can trigger a pass directly.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	now := s.clock.Now()

	var holdCancelled, expired, closed int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if holdCancelled, err = tx.Purchases().CancelHoldExpired(ctx, tx.DB(), now); err != nil {
			return err
		}
		if expired, err = tx.Purchases().ExpireValidityPassed(ctx, tx.DB(), now); err != nil {
			return err
		}
		if closed, err = tx.Slots().CloseTimedOut(ctx, tx.DB(), now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if holdCancelled > 0 || expired > 0 || closed > 0 {
		slog.Info("sweep pass completed",
			"hold_cancelled", holdCancelled,
			"validity_expired", expired,
			"slots_closed", closed,
		)
	}
	return nil
}
