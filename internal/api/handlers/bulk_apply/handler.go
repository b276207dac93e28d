package bulk_apply

import (
	"errors"
	"net/http"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	bulkApply "github.com/funinthesundocs/epictours/internal/usecase/bulk_apply"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidFilters      = "некорректные фильтры подбора слотов"
	msgInvalidDirectives   = "некорректные директивы мутации"
	msgNoDirectives        = "не выбрано ни одной директивы"
	msgNoCandidates        = "фильтры не совпали ни с одним слотом"
	msgEmptyStaffSelection = "staff-директива требует хотя бы одного сотрудника"
	msgStaffNotFound       = "назначаемый сотрудник не найден в справочнике"
	msgVehicleNotFound     = "назначаемый транспорт не найден в справочнике"
	msgHasActiveBookings   = "среди выбранных слотов есть активные бронирования"
	msgBulkExecution       = "массовая мутация не выполнена, записи не изменены"
)

// BulkApplyRequest HTTP request model
type BulkApplyRequest struct {
	AvailabilityIDs []int64                     `json:"availabilityIds,omitempty"`
	Filters         []handlers.FilterPayload    `json:"filters,omitempty"`
	Directives      []handlers.DirectivePayload `json:"directives"`
	DryRun          bool                        `json:"dryRun,omitempty"`
}

type Handler struct {
	useCase BulkApplyUseCase
	logger  Logger
}

func NewHandler(useCase BulkApplyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availabilities/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkApplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availabilities/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	filters, err := handlers.ParseFilters(req.Filters)
	if err != nil {
		h.logger.Warn("POST /availabilities/bulk - Invalid filters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilters)
		return
	}

	directives, err := handlers.ParseDirectives(req.Directives)
	if err != nil {
		h.logger.Warn("POST /availabilities/bulk - Invalid directives: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDirectives)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bulkApply.Request{
		ExplicitIDs: req.AvailabilityIDs,
		Filters:     filters,
		Directives:  directives,
		DryRun:      req.DryRun,
	})
	if err != nil {
		switch {
		case errors.Is(err, bulkApply.ErrNoDirectives):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoDirectives)

		case errors.Is(err, bulkApply.ErrNoCandidates):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoCandidates)

		case errors.Is(err, bulkApply.ErrEmptyStaffSelection):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEmptyStaffSelection)

		case errors.Is(err, bulkApply.ErrStaffNotFound):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgStaffNotFound)

		case errors.Is(err, bulkApply.ErrVehicleNotFound):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgVehicleNotFound)

		case errors.Is(err, bulkApply.ErrHasActiveBookings):
			h.logger.Warn("POST /availabilities/bulk - Delete blocked by active bookings")
			handlers.RespondError(w, http.StatusConflict, msgHasActiveBookings)

		case errors.Is(err, bulkApply.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bulkApply.ErrBulkExecution):
			h.logger.Error("POST /availabilities/bulk - Execution failed: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgBulkExecution)

		default:
			h.logger.Error("POST /availabilities/bulk - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availabilities/bulk - Plan matched=%d, delete=%t, dryRun=%t",
		result.Matched, result.Delete, result.DryRun)
	handlers.RespondJSON(w, http.StatusOK, result)
}
