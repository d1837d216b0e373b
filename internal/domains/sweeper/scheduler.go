package sweeper

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"lodge/config"
)

// Scheduler drives periodic sweep passes. At most one pass runs at a time; a
// tick arriving while the previous pass is still in flight is dropped.
type Scheduler interface {
	Start()
	Stop()
}

func NewScheduler(cfg *config.Config, sweeper Sweeper) Scheduler {
	if !cfg.Inventory.SweepEnable {
		log.Warn().Msg("hold expiry sweep disabled")

		return &noopScheduler{}
	}

	return &tickerScheduler{
		interval:  time.Duration(cfg.Inventory.SweepIntervalMs) * time.Millisecond,
		batchSize: cfg.Inventory.SweepBatchSize,
		sweeper:   sweeper,
		stop:      make(chan struct{}),
	}
}

type tickerScheduler struct {
	interval  time.Duration
	batchSize int
	sweeper   Sweeper
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	inFlight  atomic.Bool
}

func (s *tickerScheduler) Start() {
	log.Info().Dur("interval", s.interval).Int("batch_size", s.batchSize).Msg("hold expiry sweep scheduled")

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *tickerScheduler) tick() {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Warn().Msg("previous sweep still running, skipping tick")

		return
	}
	defer s.inFlight.Store(false)

	if _, err := s.sweeper.ProcessExpiredHolds(context.Background(), s.batchSize); err != nil {
		log.Error().Err(err).Msg("sweep pass failed")
	}
}

func (s *tickerScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

type noopScheduler struct{}

func (n *noopScheduler) Start() {}
func (n *noopScheduler) Stop()  {}
