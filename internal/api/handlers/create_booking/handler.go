package create_booking

import (
	"errors"
	"net/http"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	createBooking "github.com/funinthesundocs/epictours/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgAvailabilityMissing = "слот не найден"
	msgZeroPassengers      = "бронирование должно содержать хотя бы одного пассажира"
	msgNegativeOverride    = "ручной итог не может быть отрицательным"
	msgCapacityExceeded    = "недостаточно свободных мест в слоте"
	msgNotPriceable        = "для слота нет тарифов, бронирование пока невозможно"
	msgUnknownTier         = "неизвестный тир прайс-листа"
	msgCashNotAllowed      = "наличные недоступны при оплате позже"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrAvailabilityNotFound):
			h.logger.Warn("POST /bookings - Availability not found: availability_id=%d", req.AvailabilityID)
			handlers.RespondNotFound(w, msgAvailabilityMissing)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: availability_id=%d", req.AvailabilityID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrZeroPassengers):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZeroPassengers)

		case errors.Is(err, createBooking.ErrNegativeOverride):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNegativeOverride)

		case errors.Is(err, createBooking.ErrNotPriceable):
			h.logger.Warn("POST /bookings - Not priceable: availability_id=%d", req.AvailabilityID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotPriceable)

		case errors.Is(err, createBooking.ErrUnknownTier):
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, createBooking.ErrCashNotAllowed):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCashNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: availability_id=%d, error=%v",
				req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, availability_id=%d, total=%s",
		result.ID, result.AvailabilityID, result.GrandTotal)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
