package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	updateBooking "github.com/funinthesundocs/epictours/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingCancelled   = "отмененное бронирование нельзя редактировать"
	msgZeroPassengers     = "бронирование должно содержать хотя бы одного пассажира"
	msgNegativeOverride   = "ручной итог не может быть отрицательным"
	msgCapacityExceeded   = "недостаточно свободных мест в слоте"
	msgNotPriceable       = "для слота нет тарифов, пересчет невозможен"
	msgUnknownTier        = "неизвестный тир прайс-листа"
	msgCashNotAllowed     = "наличные недоступны при оплате позже"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/%d - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrBookingCancelled):
			h.logger.Warn("PUT /bookings/%d - Booking is cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, updateBooking.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrCapacityExceeded):
			h.logger.Warn("PUT /bookings/%d - Capacity exceeded", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, updateBooking.ErrZeroPassengers):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZeroPassengers)

		case errors.Is(err, updateBooking.ErrNegativeOverride):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNegativeOverride)

		case errors.Is(err, updateBooking.ErrNotPriceable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotPriceable)

		case errors.Is(err, updateBooking.ErrUnknownTier):
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, updateBooking.ErrCashNotAllowed):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCashNotAllowed)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /bookings/%d - Failed to update booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking updated: total=%s", bookingID, result.GrandTotal)
	handlers.RespondJSON(w, http.StatusOK, result)
}
