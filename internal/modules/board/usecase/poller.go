package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	boardin "lifeos/internal/modules/board/port/in"
)

// Poller runs quiet refreshes on a fixed interval.
type Poller struct {
	board    boardin.Usecase
	interval time.Duration
	logger   *zap.Logger
	onTick   func(error)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPoller builds a poller. onTick, when set, is called after every refresh
// with its result.
func NewPoller(board boardin.Usecase, interval time.Duration, logger *zap.Logger, onTick func(error)) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{board: board, interval: interval, logger: logger.Named("poller"), onTick: onTick}
}

// Start launches the refresh loop. It stops when ctx is cancelled or Stop is
// called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return errors.New("poller already running")
	}
	if p.interval <= 0 {
		return errors.New("poller interval must be positive")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	go p.loop(loopCtx, p.done)
	p.logger.Debug("poller started", zap.Duration("interval", p.interval))
	return nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := p.board.Refresh(ctx, true)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				p.logger.Debug("quiet refresh failed", zap.Error(err))
			}
			if p.onTick != nil {
				p.onTick(err)
			}
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}
