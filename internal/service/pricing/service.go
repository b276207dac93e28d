package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	pricingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/pricing"
)

// Service сервис резолва тарифов (Pricing Resolver)
type Service struct {
	pricingRepo PricingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(pricingRepo PricingRepository, logger Logger) *Service {
	return &Service{
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

// ResolveRates возвращает тарифные строки прайс-листа для указанного тира
// и имя фактически использованного тира
//
// Правила выбора тира:
// - непустой tier должен существовать в прайс-листе, иначе ErrUnknownTier
// - пустой tier: "Retail", если прайс-лист его объявляет, иначе первый
//   тир в объявленном порядке сортировки
//
// Чистое чтение, без побочных эффектов
func (s *Service) ResolveRates(ctx context.Context, scheduleID int64, tier string) ([]domain.PricingRate, string, error) {
	tiers, err := s.pricingRepo.GetScheduleTiers(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrScheduleNotFound) {
			s.logger.Warn("ResolveRates: schedule id=%d not found", scheduleID)
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("ResolveRates: failed to get tiers for schedule id=%d: %v", scheduleID, err)
		return nil, "", fmt.Errorf("%w: ResolveRates - repository error: %v", ErrInternal, err)
	}

	resolvedTier, err := resolveTier(tiers, tier)
	if err != nil {
		s.logger.Warn("ResolveRates: cannot resolve tier %q for schedule id=%d: %v", tier, scheduleID, err)
		return nil, "", err
	}

	rates, err := s.pricingRepo.GetRates(ctx, scheduleID, resolvedTier)
	if err != nil {
		s.logger.Error("ResolveRates: failed to get rates for schedule id=%d tier=%s: %v", scheduleID, resolvedTier, err)
		return nil, "", fmt.Errorf("%w: ResolveRates - repository error: %v", ErrInternal, err)
	}

	if len(rates) == 0 {
		s.logger.Warn("ResolveRates: no rates for schedule id=%d tier=%s", scheduleID, resolvedTier)
		return nil, resolvedTier, ErrNoRatesForTier
	}

	s.logger.Info("ResolveRates: resolved %d rates for schedule id=%d tier=%s", len(rates), scheduleID, resolvedTier)
	return rates, resolvedTier, nil
}

// resolveTier выбирает фактический тир по запрошенному имени
func resolveTier(tiers []string, requested string) (string, error) {
	if len(tiers) == 0 {
		return "", ErrNoRatesForTier
	}

	if requested != "" {
		for _, t := range tiers {
			if t == requested {
				return t, nil
			}
		}
		return "", ErrUnknownTier
	}

	for _, t := range tiers {
		if t == domain.DefaultTierName {
			return t, nil
		}
	}

	return tiers[0], nil
}
