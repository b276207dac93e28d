package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
)

// UseCase use case создания бронирования
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

// Execute выполняет создание бронирования
// Проверка вместимости и вставка выполняются в одной сериализуемой
// транзакции, чтобы два параллельных бронирования не переполнили слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: availability=%d, pax=%d", req.AvailabilityID, req.Passengers.Total())

	// 1. Валидация входных данных (до обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем слот с блокировкой (FOR UPDATE)
		availability, err := uc.availabilityRepo.GetByID(txCtx, req.AvailabilityID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				uc.logger.Warn("CreateBooking: availability id=%d not found", req.AvailabilityID)
				return ErrAvailabilityNotFound
			}
			uc.logger.Error("CreateBooking: failed to get availability id=%d: %v", req.AvailabilityID, err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 2.2. Живой набор активных бронирований слота (FOR UPDATE)
		activeBookings, err := uc.bookingRepo.ListActiveByAvailability(txCtx, req.AvailabilityID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 2.3. Авторитетная проверка вместимости в момент сохранения
		capacity := domain.ComputeCapacity(availability.MaxCapacity, activeBookings, req.Passengers.Total(), 0)
		if capacity.Booked > availability.MaxCapacity {
			uc.logger.Warn("CreateBooking: capacity exceeded for availability id=%d: %d/%d",
				req.AvailabilityID, capacity.Booked, availability.MaxCapacity)
			return ErrCapacityExceeded
		}

		// 2.4. Резолв тарифов по прайс-листу слота
		if availability.PricingScheduleID == nil {
			uc.logger.Warn("CreateBooking: availability id=%d has no pricing schedule", req.AvailabilityID)
			return ErrNotPriceable
		}

		rates, tier, err := uc.pricingResolver.ResolveRates(txCtx, *availability.PricingScheduleID, req.Tier)
		if err != nil {
			switch {
			case errors.Is(err, pricingService.ErrUnknownTier):
				return ErrUnknownTier
			case errors.Is(err, pricingService.ErrScheduleNotFound),
				errors.Is(err, pricingService.ErrNoRatesForTier):
				// Пустой список тарифов = "забронировать пока нельзя",
				// а не нулевая цена
				return ErrNotPriceable
			}
			uc.logger.Error("CreateBooking: failed to resolve rates: %v", err)
			return fmt.Errorf("%w: failed to resolve rates: %v", ErrInternal, err)
		}

		// 2.5. Расчет строк и итогов
		totals := domain.ComputeTotals(rates, req.Passengers, req.OverrideTotal, req.PromoCode)

		// 2.6. Платежное состояние по итоговой сумме
		payment, err := derivePaymentState(req, totals)
		if err != nil {
			uc.logger.Warn("CreateBooking: payment derivation failed: %v", err)
			return err
		}

		// 2.7. Сохраняем бронь с платежными полями из драфта
		booking := &domain.Booking{
			AvailabilityID: req.AvailabilityID,
			Status:         domain.StatusConfirmed,
			Passengers:     req.Passengers,
			OptionValues:   req.OptionValues,
			Notes:          req.Notes,
			PaymentStatus:  payment.Status,
			PaymentMethod:  payment.Method,
			AmountPaid:     payment.Amount,
			OverrideTotal:  req.OverrideTotal,
			PromoCode:      req.PromoCode,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = buildResponse(created, totals, payment, tier, capacity.Remaining)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return result, nil
}
