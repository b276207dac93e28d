package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	bookingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/booking"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
)

// UseCase use case редактирования бронирования in-place
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	pricingResolver  PricingResolver
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	pricingResolver PricingResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		pricingResolver:  pricingResolver,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет редактирование бронирования
// Собственные места брони исключаются из базовой занятости перед
// добавлением новой разбивки - иначе слот посчитал бы сам себя дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, pax=%d", req.BookingID, req.Passengers.Total())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsCancelled() {
			uc.logger.Warn("UpdateBooking: booking id=%d is cancelled", req.BookingID)
			return ErrBookingCancelled
		}

		// 2.2. Читаем слот с блокировкой
		availability, err := uc.availabilityRepo.GetByID(txCtx, booking.AvailabilityID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return ErrAvailabilityNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get availability id=%d: %v", booking.AvailabilityID, err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 2.3. Живой набор активных бронирований (FOR UPDATE)
		activeBookings, err := uc.bookingRepo.ListActiveByAvailability(txCtx, booking.AvailabilityID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 2.4. Проверка вместимости: прежние места этой брони исключены
		capacity := domain.ComputeCapacity(availability.MaxCapacity, activeBookings, req.Passengers.Total(), booking.ID)
		if capacity.Booked > availability.MaxCapacity {
			uc.logger.Warn("UpdateBooking: capacity exceeded for availability id=%d: %d/%d",
				booking.AvailabilityID, capacity.Booked, availability.MaxCapacity)
			return ErrCapacityExceeded
		}

		// 2.5. Пересчет тарифов и итогов
		if availability.PricingScheduleID == nil {
			return ErrNotPriceable
		}

		rates, tier, err := uc.pricingResolver.ResolveRates(txCtx, *availability.PricingScheduleID, req.Tier)
		if err != nil {
			switch {
			case errors.Is(err, pricingService.ErrUnknownTier):
				return ErrUnknownTier
			case errors.Is(err, pricingService.ErrScheduleNotFound),
				errors.Is(err, pricingService.ErrNoRatesForTier):
				return ErrNotPriceable
			}
			uc.logger.Error("UpdateBooking: failed to resolve rates: %v", err)
			return fmt.Errorf("%w: failed to resolve rates: %v", ErrInternal, err)
		}

		totals := domain.ComputeTotals(rates, req.Passengers, req.OverrideTotal, req.PromoCode)

		// 2.6. Платежное состояние по новой итоговой сумме
		payment, err := derivePaymentState(req, totals)
		if err != nil {
			uc.logger.Warn("UpdateBooking: payment derivation failed: %v", err)
			return err
		}

		// 2.7. Обновляем ту же запись, тот же id
		booking.Passengers = req.Passengers
		booking.OptionValues = req.OptionValues
		booking.Notes = req.Notes
		booking.PaymentStatus = payment.Status
		booking.PaymentMethod = payment.Method
		booking.AmountPaid = payment.Amount
		booking.OverrideTotal = req.OverrideTotal
		booking.PromoCode = req.PromoCode

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = buildResponse(booking, totals, payment, tier, capacity.Remaining)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", req.BookingID)
	return result, nil
}
