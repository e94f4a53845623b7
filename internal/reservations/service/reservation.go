package service

import (
	"context"
	"errors"
	"time"

	"campsite/internal/reservations/availability"
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/events"
	"campsite/internal/reservations/repository"
	"campsite/internal/reservations/rules"
	"campsite/pkg/cache"
	"campsite/pkg/clock"
	"campsite/pkg/config"
	apperrors "campsite/pkg/errors"
	"campsite/pkg/lock"
	"campsite/pkg/model"
	"campsite/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// LockID serializes every reservation write behind a single advisory lock.
// One campsite, one lock.
const LockID = "campsite"

type ReservationService interface {
	Reserve(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
	GetAvailableDates(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lock      lock.Manager
	cache     cache.AvailabilityCache
	rules     *rules.Pipeline
	publisher events.Publisher
	clock     clock.Clock
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockManager lock.Manager,
	availabilityCache cache.AvailabilityCache,
	pipeline *rules.Pipeline,
	publisher events.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lock:      lockManager,
		cache:     availabilityCache,
		rules:     pipeline,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

func (s *reservationService) Reserve(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
	email = sanitizer.NormalizeEmail(email)
	checkin := clock.Midnight(arrivalDate, s.clock.Location())
	checkout := checkin.AddDate(0, 0, lengthOfStay)

	if err := s.rules.Validate(email, checkin, lengthOfStay); err != nil {
		return nil, err
	}

	// Optimistic pre-check against the cache. It can go stale the moment it
	// returns; the authoritative answer comes from the re-check under the
	// lock.
	available, err := s.availableDates(ctx, checkin, lastNight(checkout), "", true)
	if err != nil {
		return nil, err
	}
	if !stayCovered(available, checkin, checkout) {
		return nil, noPlacesAvailable()
	}

	reservation := &model.Reservation{
		Email:    email,
		Checkin:  checkin,
		Checkout: checkout,
	}

	err = s.lock.WithLock(ctx, LockID, s.cfg.LockTimeout, func(lockCtx context.Context) error {
		s.invalidateCache(lockCtx)

		return s.repo.ExecuteTransaction(lockCtx, func(sessCtx mongo.SessionContext) error {
			available, err := s.availableDates(sessCtx, checkin, lastNight(checkout), "", false)
			if err != nil {
				return err
			}
			if !stayCovered(available, checkin, checkout) {
				return noPlacesAvailable()
			}
			if err := s.repo.Create(sessCtx, reservation); err != nil {
				return apperrors.Internal("Failed to create reservation", err)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, noPlacesAvailable()
		}
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation created",
		"id", reservation.ID,
		"checkin", reservation.Checkin,
		"checkout", reservation.Checkout,
	)
	s.publisher.ReservationCreated(ctx, reservation)

	return reservation, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
	existing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Canceled {
		return nil, apperrors.Conflict("Cannot update a canceled reservation")
	}

	checkin := clock.Midnight(arrivalDate, s.clock.Location())
	checkout := checkin.AddDate(0, 0, lengthOfStay)

	if err := s.rules.Validate(existing.Email, checkin, lengthOfStay); err != nil {
		return nil, err
	}

	// The reservation's own nights do not count against it, so the cache
	// (which knows nothing about exclusions) is bypassed on both checks.
	available, err := s.availableDates(ctx, checkin, lastNight(checkout), existing.ID, false)
	if err != nil {
		return nil, err
	}
	if !stayCovered(available, checkin, checkout) {
		return nil, noPlacesAvailable()
	}

	err = s.lock.WithLock(ctx, LockID, s.cfg.LockTimeout, func(lockCtx context.Context) error {
		s.invalidateCache(lockCtx)

		return s.repo.ExecuteTransaction(lockCtx, func(sessCtx mongo.SessionContext) error {
			available, err := s.availableDates(sessCtx, checkin, lastNight(checkout), existing.ID, false)
			if err != nil {
				return err
			}
			if !stayCovered(available, checkin, checkout) {
				return noPlacesAvailable()
			}
			if err := s.repo.UpdateStay(sessCtx, existing.ID, checkin, checkout); err != nil {
				return apperrors.Internal("Failed to update reservation", err)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, noPlacesAvailable()
		}
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return nil, err
	}

	existing.Checkin = checkin
	existing.Checkout = checkout

	s.cfg.Log.Info("Reservation updated",
		"id", existing.ID,
		"checkin", checkin,
		"checkout", checkout,
	)
	s.publisher.ReservationUpdated(ctx, existing)

	return existing, nil
}

// CancelReservation takes no distributed lock: canceling only frees capacity,
// so it cannot cause overbooking no matter how it interleaves with writes.
func (s *reservationService) CancelReservation(ctx context.Context, id string) error {
	existing, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Canceled {
		return nil
	}

	if err := s.repo.SetCanceled(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to cancel reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel reservation", err)
	}

	s.invalidateCache(ctx)

	existing.Canceled = true
	s.cfg.Log.Info("Reservation canceled", "id", id)
	s.publisher.ReservationCanceled(ctx, existing)

	return nil
}

func (s *reservationService) GetAvailableDates(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error) {
	loc := s.clock.Location()
	today := clock.Midnight(s.clock.Now(), loc)
	firstDay = clock.Midnight(firstDay, loc)
	lastDay = clock.Midnight(lastDay, loc)

	// Never report dates that already passed.
	if firstDay.Before(today) {
		firstDay = today
	}
	if lastDay.Before(firstDay) {
		return []time.Time{}, nil
	}

	return s.availableDates(ctx, firstDay, lastDay, "", true)
}

func (s *reservationService) findByID(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, reservationerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("reservation", id)
		case errors.Is(err, reservationerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		default:
			return nil, apperrors.Internal("Failed to load reservation", err)
		}
	}
	return reservation, nil
}

// availableDates computes the free dates in [firstDay, lastDay]. The cache is
// consulted only when asked and only for queries without an exclusion, since
// cached entries are computed against full occupancy.
func (s *reservationService) availableDates(ctx context.Context, firstDay, lastDay time.Time, excludeID string, useCache bool) ([]time.Time, error) {
	useCache = useCache && excludeID == ""

	if useCache {
		if dates, ok := s.cache.Get(ctx, firstDay, lastDay); ok {
			return dates, nil
		}
	}

	reservations, err := s.repo.FindInPeriod(ctx, firstDay, lastDay)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations", err)
	}

	dates := availability.Dates(firstDay, lastDay, s.cfg.CampsiteCapacity, reservations, excludeID)

	if useCache {
		s.cache.Put(ctx, firstDay, lastDay, dates)
	}
	return dates, nil
}

func (s *reservationService) invalidateCache(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.cfg.Log.Warn("Failed to invalidate availability cache", "error", err)
	}
}

// stayCovered reports whether every night of [checkin, checkout) appears in
// the available dates.
func stayCovered(available []time.Time, checkin, checkout time.Time) bool {
	free := make(map[int64]struct{}, len(available))
	for _, d := range available {
		free[d.Unix()] = struct{}{}
	}
	for night := checkin; night.Before(checkout); night = night.AddDate(0, 0, 1) {
		if _, ok := free[night.Unix()]; !ok {
			return false
		}
	}
	return true
}

func lastNight(checkout time.Time) time.Time {
	return checkout.AddDate(0, 0, -1)
}

func noPlacesAvailable() error {
	return apperrors.Conflict("No places available for the selected dates")
}
