package telegram

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPollTimeout = 30
	minRetryDelay      = time.Second
	maxRetryDelay      = 15 * time.Second
)

type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Poller long-polls getUpdates and hands every update to a bounded pool of
// goroutines.
type Poller struct {
	source  UpdateSource
	handle  UpdateFunc
	logger  *zap.SugaredLogger
	workers int
	timeout int
	wait    func(ctx context.Context, d time.Duration) error
}

func NewPoller(source UpdateSource, handle UpdateFunc, workers int, logger *zap.SugaredLogger) *Poller {
	if workers <= 0 {
		workers = 1
	}
	return &Poller{
		source:  source,
		handle:  handle,
		logger:  logger,
		workers: workers,
		timeout: defaultPollTimeout,
		wait:    sleepContext,
	}
}

// Run polls until ctx is cancelled, then waits for in-flight handlers.
func (p *Poller) Run(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	// In-flight updates finish even after shutdown starts.
	handleCtx := context.WithoutCancel(ctx)

	offset := 0
	for ctx.Err() == nil {
		cfg := tgbotapi.NewUpdate(offset)
		cfg.Timeout = p.timeout

		updates, err := p.source.GetUpdates(cfg)
		if err != nil {
			d := retryDelay(err)
			p.logger.Warnw("polling failed", "error", err, "retry_in", d)
			if err := p.wait(ctx, d); err != nil {
				break
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			upd := upd
			g.Go(func() error {
				if err := p.handle(handleCtx, upd); err != nil {
					p.logger.Errorw("update failed", "update_id", upd.UpdateID, "error", err)
				}
				return nil
			})
		}
	}

	p.logger.Infow("polling stopped", "next_offset", offset)
	return g.Wait()
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelay(err error) time.Duration {
	var d time.Duration
	var tgErr *tgbotapi.Error
	var netErr net.Error
	switch {
	case errors.As(err, &tgErr) && tgErr.RetryAfter > 0:
		d = time.Duration(tgErr.RetryAfter) * time.Second
	case strings.Contains(strings.ToLower(err.Error()), "too many requests"):
		d = 3 * time.Second
		if m := reRetryAfter.FindStringSubmatch(err.Error()); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				d = time.Duration(n) * time.Second
			}
		}
	case errors.As(err, &netErr) && netErr.Timeout():
		d = 2 * time.Second
	default:
		d = minRetryDelay
	}
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
