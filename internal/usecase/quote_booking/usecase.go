package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
)

// UseCase use case расчета драфта бронирования без сохранения
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	pricingResolver  PricingResolver
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	pricingResolver PricingResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		pricingResolver:  pricingResolver,
		logger:           logger,
	}
}

// Execute выполняет расчет драфта: транзакции нет, записи не меняются.
// Занятость считается спекулятивно - как если бы драфт уже сохранили,
// но ответ Fits=false это лишь прогноз, а не гарантия конфликта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteBooking: availability=%d, pax=%d", req.AvailabilityID, req.Passengers.Total())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем слот (без блокировки - это только чтение)
	availability, err := uc.availabilityRepo.GetByID(ctx, req.AvailabilityID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("QuoteBooking: availability id=%d not found", req.AvailabilityID)
			return nil, ErrAvailabilityNotFound
		}
		uc.logger.Error("QuoteBooking: failed to get availability id=%d: %v", req.AvailabilityID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 3. Спекулятивная занятость слота
	activeBookings, err := uc.bookingRepo.ListActiveByAvailability(ctx, req.AvailabilityID)
	if err != nil {
		uc.logger.Error("QuoteBooking: failed to get active bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
	}

	var excludeID int64
	if req.EditingBookingID != nil {
		excludeID = *req.EditingBookingID
	}

	capacity := domain.ComputeCapacity(availability.MaxCapacity, activeBookings, req.Passengers.Total(), excludeID)
	fits := capacity.Booked <= availability.MaxCapacity

	// 4. Тарифы и итоги
	if availability.PricingScheduleID == nil {
		return nil, ErrNotPriceable
	}

	rates, tier, err := uc.pricingResolver.ResolveRates(ctx, *availability.PricingScheduleID, req.Tier)
	if err != nil {
		switch {
		case errors.Is(err, pricingService.ErrUnknownTier):
			return nil, ErrUnknownTier
		case errors.Is(err, pricingService.ErrScheduleNotFound),
			errors.Is(err, pricingService.ErrNoRatesForTier):
			return nil, ErrNotPriceable
		}
		uc.logger.Error("QuoteBooking: failed to resolve rates: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve rates: %v", ErrInternal, err)
	}

	totals := domain.ComputeTotals(rates, req.Passengers, req.OverrideTotal, req.PromoCode)

	// 5. Платежное состояние драфта
	payment, err := derivePaymentState(req, totals)
	if err != nil {
		uc.logger.Warn("QuoteBooking: payment derivation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("QuoteBooking: quoted availability=%d, grandTotal=%s, fits=%t",
		req.AvailabilityID, totals.GrandTotal.StringFixed(2), fits)

	return buildResponse(req, totals, payment, tier, capacity, fits), nil
}
