package quote_booking

import (
	"errors"
	"net/http"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	quoteBooking "github.com/funinthesundocs/epictours/internal/usecase/quote_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgAvailabilityMissing = "слот не найден"
	msgZeroPassengers      = "драфт должен содержать хотя бы одного пассажира"
	msgNegativeOverride    = "ручной итог не может быть отрицательным"
	msgNotPriceable        = "для слота нет тарифов, расчет пока невозможен"
	msgUnknownTier         = "неизвестный тир прайс-листа"
	msgCashNotAllowed      = "наличные недоступны при оплате позже"
	msgInvalidInput        = "некорректные данные драфта"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgAvailabilityMissing)

		case errors.Is(err, quoteBooking.ErrZeroPassengers):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZeroPassengers)

		case errors.Is(err, quoteBooking.ErrNegativeOverride):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNegativeOverride)

		case errors.Is(err, quoteBooking.ErrNotPriceable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotPriceable)

		case errors.Is(err, quoteBooking.ErrUnknownTier):
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, quoteBooking.ErrCashNotAllowed):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCashNotAllowed)

		case errors.Is(err, quoteBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/quote - Failed to quote booking: availability_id=%d, error=%v",
				req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
