package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	availabilitiesService "github.com/funinthesundocs/epictours/internal/service/availabilities"
)

const (
	msgInvalidAvailabilityID = "некорректный идентификатор слота"
	msgAvailabilityNotFound  = "слот не найден"
	msgHasActiveBookings     = "у слота есть активные бронирования, сначала отмените их"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availabilities/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	availabilityID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil || availabilityID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	if err := h.service.Delete(r.Context(), availabilityID); err != nil {
		switch {
		case errors.Is(err, availabilitiesService.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		case errors.Is(err, availabilitiesService.ErrHasActiveBookings):
			h.logger.Warn("DELETE /availabilities/%d - Has active bookings", availabilityID)
			handlers.RespondError(w, http.StatusConflict, msgHasActiveBookings)

		default:
			h.logger.Error("DELETE /availabilities/%d - Failed to delete availability: %v", availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availabilities/%d - Availability deleted", availabilityID)
	handlers.RespondNoContent(w)
}
