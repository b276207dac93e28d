package get_availability

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

// Handle GET /api/v1/availabilities/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	availabilityID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil || availabilityID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	result, err := h.service.GetByID(r.Context(), availabilityID)
	if err != nil {
		switch {
		case errors.Is(err, availabilitiesService.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		default:
			h.logger.Error("GET /availabilities/%d - Failed to get availability: %v", availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
