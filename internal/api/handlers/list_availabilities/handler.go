package list_availabilities

import (
	"net/http"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
)

const msgInvalidFilters = "некорректные параметры фильтрации"

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

// Handle GET /api/v1/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availabilities - Invalid filters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilters)
		return
	}

	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("GET /availabilities - Failed to list availabilities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
