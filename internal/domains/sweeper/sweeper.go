// Package sweeper reclaims inventory from holds whose TTL has lapsed without
// confirmation.
package sweeper

//go:generate go run go.uber.org/mock/mockgen -source=./sweeper.go -destination=./mocks/sweeper_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepository "lodge/internal/domains/booking/repository"
	invService "lodge/internal/domains/inventory/service"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	"lodge/shared/timezone"
)

// Failure records one booking the sweep could not process. The booking stays
// an expired hold and is picked up again on the next pass.
type Failure struct {
	BookingID string `json:"booking_id"`
	Error     string `json:"error"`
}

// Result summarizes one sweep pass.
type Result struct {
	Processed int       `json:"processed"`
	Released  int       `json:"released"`
	Skipped   int       `json:"skipped"`
	Failures  []Failure `json:"failures,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// HoldExpiredEvent is published per booking the sweeper releases.
type HoldExpiredEvent struct {
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id"`
	RoomTypeID string    `json:"room_type_id"`
	HoldToken  string    `json:"hold_token"`
	Rooms      int       `json:"rooms"`
	ExpiredAt  time.Time `json:"expired_at"`
	ReleasedAt time.Time `json:"released_at"`
}

type Sweeper interface {
	ProcessExpiredHolds(ctx context.Context, batchSize int) (Result, error)
}

type sweeperImpl struct {
	cfg          *config.Config
	txRunner     postgres.TxRunner
	bookingRepo  bookingRepository.Booking
	inventorySvc invService.Inventory
	events       kafka.Client
	cache        cache.RedisCache
	otel         otel.Otel
	now          func() time.Time
}

func New(
	cfg *config.Config,
	txRunner postgres.TxRunner,
	bookingRepo bookingRepository.Booking,
	inventorySvc invService.Inventory,
	events kafka.Client,
	cache cache.RedisCache,
	otel otel.Otel,
) Sweeper {
	return NewWithClock(cfg, txRunner, bookingRepo, inventorySvc, events, cache, otel, timezone.Now)
}

func NewWithClock(
	cfg *config.Config,
	txRunner postgres.TxRunner,
	bookingRepo bookingRepository.Booking,
	inventorySvc invService.Inventory,
	events kafka.Client,
	cache cache.RedisCache,
	otel otel.Otel,
	now func() time.Time,
) Sweeper {
	return &sweeperImpl{
		cfg:          cfg,
		txRunner:     txRunner,
		bookingRepo:  bookingRepo,
		inventorySvc: inventorySvc,
		events:       events,
		cache:        cache,
		otel:         otel,
		now:          now,
	}
}

// ProcessExpiredHolds releases up to batchSize expired holds, each in its own
// transaction so one poisoned booking cannot wedge the rest of the batch. The
// candidate list is a dirty read; every booking is re-checked under a row lock
// and skipped silently when a concurrent confirm or release got there first.
func (s *sweeperImpl) ProcessExpiredHolds(ctx context.Context, batchSize int) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweeperScopeName, constant.OtelSweeperScopeName+".ProcessExpiredHolds")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.now()
	res.CheckedAt = now

	if batchSize <= 0 {
		batchSize = s.cfg.Inventory.SweepBatchSize
	}

	candidates, err := s.bookingRepo.FindExpiredHolds(ctx, now, batchSize)
	if err != nil {
		return res, err
	}

	for _, candidate := range candidates {
		res.Processed++

		released, sweepErr := s.sweepBooking(ctx, candidate.ID, now)
		if sweepErr != nil {
			log.Error().Err(sweepErr).Str("booking_id", candidate.ID).Msg("failed to sweep expired hold")
			res.Failures = append(res.Failures, Failure{BookingID: candidate.ID, Error: sweepErr.Error()})

			continue
		}

		if !released {
			res.Skipped++

			continue
		}

		res.Released++
	}

	if res.Released > 0 {
		go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, invService.AvailabilityCachePrefix)
	}

	log.Info().
		Int("processed", res.Processed).
		Int("released", res.Released).
		Int("skipped", res.Skipped).
		Int("failures", len(res.Failures)).
		Msg("expired hold sweep finished")

	return res, nil
}

func (s *sweeperImpl) sweepBooking(ctx context.Context, bookingID string, now time.Time) (released bool, err error) {
	var booking bookingModel.Booking

	err = s.txRunner.InSerializableTx(ctx, func(tx *sqlx.Tx) error {
		var found bool

		booking, found, err = s.bookingRepo.GetForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		// Confirmed, released, or already swept between the scan and the lock.
		if !found || !booking.HoldExpired(now) {
			return nil
		}

		nights := shared.StayNights(timezone.StayDate(booking.CheckIn), timezone.StayDate(booking.CheckOut))

		if _, txErr := s.inventorySvc.ReleaseStayTx(ctx, tx, invService.StayRef{
			PropertyID: booking.PropertyID,
			RoomTypeID: booking.RoomTypeID,
			BookingID:  booking.ID,
			HoldToken:  booking.HoldToken,
			Nights:     nights,
			Rooms:      booking.Rooms,
			Status:     bookingModel.StatusHold,
			Reason:     "hold expired",
		}, now); txErr != nil {
			return txErr
		}

		if txErr := s.bookingRepo.MarkHoldFailedTx(ctx, tx, booking, now); txErr != nil {
			return txErr
		}

		released = true

		return nil
	})
	if err != nil {
		return false, err
	}

	if released {
		s.publishHoldExpired(ctx, booking, now)
	}

	return released, nil
}

// publishHoldExpired is best effort; the release is already committed and a
// publish failure must not fail the sweep.
func (s *sweeperImpl) publishHoldExpired(ctx context.Context, booking bookingModel.Booking, releasedAt time.Time) {
	event := HoldExpiredEvent{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RoomTypeID: booking.RoomTypeID,
		HoldToken:  booking.HoldToken,
		Rooms:      booking.Rooms,
		ReleasedAt: releasedAt,
	}
	if booking.HoldExpiresAt != nil {
		event.ExpiredAt = *booking.HoldExpiresAt
	}

	err := s.events.SendMessages(ctx, s.cfg.Inventory.HoldExpiryTopic, kafka.Message{
		Key:   booking.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish hold expired event")
	}
}
