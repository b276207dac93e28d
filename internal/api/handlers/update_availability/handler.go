package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	availabilitiesService "github.com/funinthesundocs/epictours/internal/service/availabilities"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidAvailabilityID = "некорректный идентификатор слота"
	msgAvailabilityNotFound  = "слот не найден"
	msgDeleteNotAllowed      = "удаление недоступно при редактировании полей"
	msgNoUpdates             = "запрос не содержит изменений"
	msgInvalidDirectives     = "некорректные директивы редактирования"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Directives []handlers.DirectivePayload `json:"directives"`
}

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

// Handle PATCH /api/v1/availabilities/{availabilityId}
// Одиночное редактирование полей использует тот же словарь директив,
// что и массовая мутация
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	availabilityID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil || availabilityID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /availabilities/%d - Invalid request body: %v", availabilityID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	directives, err := handlers.ParseDirectives(req.Directives)
	if err != nil {
		h.logger.Warn("PATCH /availabilities/%d - Invalid directives: %v", availabilityID, err)
		handlers.RespondBadRequest(w, msgInvalidDirectives)
		return
	}

	if err := h.service.Update(r.Context(), availabilityID, directives); err != nil {
		switch {
		case errors.Is(err, availabilitiesService.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		case errors.Is(err, availabilitiesService.ErrDeleteNotAllowed):
			handlers.RespondBadRequest(w, msgDeleteNotAllowed)

		case errors.Is(err, availabilitiesService.ErrNoUpdates):
			handlers.RespondBadRequest(w, msgNoUpdates)

		case errors.Is(err, availabilitiesService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDirectives)

		default:
			h.logger.Error("PATCH /availabilities/%d - Failed to update availability: %v", availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availabilities/%d - Availability updated", availabilityID)
	handlers.RespondNoContent(w)
}
