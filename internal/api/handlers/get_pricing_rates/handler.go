package get_pricing_rates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funinthesundocs/epictours/internal/api/handlers"
	"github.com/funinthesundocs/epictours/internal/domain"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
)

const (
	msgInvalidScheduleID = "некорректный идентификатор прайс-листа"
	msgScheduleNotFound  = "прайс-лист не найден"
	msgUnknownTier       = "неизвестный тир прайс-листа"
	msgNoRatesForTier    = "для этого тира нет тарифов"
)

// RateResponse одна тарифная строка прайс-листа
type RateResponse struct {
	PassengerTypeID   string `json:"passengerTypeId"`
	PassengerTypeName string `json:"passengerTypeName"`
	Price             string `json:"price"`
	TaxPercentage     string `json:"taxPercentage"`
}

// RatesResponse тарифы прайс-листа для разрешенного тира
type RatesResponse struct {
	ScheduleID int64          `json:"scheduleId"`
	Tier       string         `json:"tier"`
	Rates      []RateResponse `json:"rates"`
}

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pricing/schedules/{scheduleId}/rates?tier=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	tier := r.URL.Query().Get("tier")

	rates, resolvedTier, err := h.service.ResolveRates(r.Context(), scheduleID, tier)
	if err != nil {
		switch {
		case errors.Is(err, pricingService.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, pricingService.ErrUnknownTier):
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, pricingService.ErrNoRatesForTier):
			handlers.RespondNotFound(w, msgNoRatesForTier)

		default:
			h.logger.Error("GET /pricing/schedules/%d/rates - Failed to resolve rates: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainRates(scheduleID, resolvedTier, rates))
}

func fromDomainRates(scheduleID int64, tier string, rates []domain.PricingRate) *RatesResponse {
	result := &RatesResponse{
		ScheduleID: scheduleID,
		Tier:       tier,
		Rates:      make([]RateResponse, 0, len(rates)),
	}

	for _, rate := range rates {
		result.Rates = append(result.Rates, RateResponse{
			PassengerTypeID:   rate.PassengerTypeID,
			PassengerTypeName: rate.PassengerTypeName,
			Price:             rate.Price.StringFixed(2),
			TaxPercentage:     rate.TaxPercentage.StringFixed(2),
		})
	}

	return result
}
