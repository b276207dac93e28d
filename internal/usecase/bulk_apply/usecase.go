package bulk_apply

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	fleetClient "github.com/funinthesundocs/epictours/internal/integrations/fleetservice"
)

// UseCase use case массовой мутации слотов по плану фильтры+директивы
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	fleetClient      FleetClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	fleetClient FleetClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		fleetClient:      fleetClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute строит план по текущим фильтрам и директивам и, если это не
// dry run, применяет его атомарно: либо изменены все кандидаты, либо
// ни один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BulkApply: validation failed: %v", err)
		return nil, err
	}

	// 1. Подбираем кандидатов: явный список либо фильтры
	candidateIDs := req.ExplicitIDs
	if len(candidateIDs) == 0 {
		ids, err := uc.availabilityRepo.ListIDs(ctx, req.Filters)
		if err != nil {
			uc.logger.Error("BulkApply: failed to list candidates: %v", err)
			return nil, fmt.Errorf("%w: failed to list candidates: %v", ErrBulkExecution, err)
		}
		candidateIDs = ids
	}

	uc.logger.Info("BulkApply: %d candidates, %d directives, dryRun=%t",
		len(candidateIDs), req.Directives.Len(), req.DryRun)

	// 2. Строим план и проверяем три независимых условия исполнимости
	plan := domain.BuildPlan(candidateIDs, req.Directives)

	if err := domain.ValidatePlan(candidateIDs, req.Directives); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDirectives):
			return nil, ErrNoDirectives
		case errors.Is(err, domain.ErrNoCandidates):
			return nil, ErrNoCandidates
		case errors.Is(err, domain.ErrEmptyStaffSelection):
			return nil, ErrEmptyStaffSelection
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Справочные проверки персонала и транспорта с graceful degradation
	if err := uc.checkStaffReferences(ctx, plan); err != nil {
		return nil, err
	}
	if err := uc.checkVehicleReference(ctx, plan); err != nil {
		return nil, err
	}

	// 4. Dry run: план построен, ничего не применяем
	if req.DryRun {
		return buildResponse(plan, true, 0), nil
	}

	// 5. Применяем план в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if plan.Delete {
			// Удаление защищено тем же lifecycle-инвариантом, что и
			// одиночное: слот с активными бронями не удаляется
			blocked, err := uc.bookingRepo.ListAvailabilityIDsWithActiveBookings(txCtx, plan.CandidateIDs)
			if err != nil {
				return fmt.Errorf("%w: failed to check active bookings: %v", ErrBulkExecution, err)
			}
			if len(blocked) > 0 {
				uc.logger.Warn("BulkApply: delete blocked, %d availabilities have active bookings", len(blocked))
				return ErrHasActiveBookings
			}

			return uc.availabilityRepo.BulkDelete(txCtx, plan.CandidateIDs)
		}

		return uc.availabilityRepo.BulkUpdate(txCtx, plan.CandidateIDs, plan.Patch)
	})

	if err != nil {
		if errors.Is(err, ErrHasActiveBookings) {
			return nil, ErrHasActiveBookings
		}
		uc.logger.Error("BulkApply: execution failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBulkExecution, err)
	}

	uc.logger.Info("BulkApply: applied plan to %d availabilities, delete=%t",
		len(plan.CandidateIDs), plan.Delete)

	return buildResponse(plan, false, len(plan.CandidateIDs)), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Directives == nil {
		return fmt.Errorf("%w: directives must be provided", ErrInvalidInput)
	}
	if len(req.ExplicitIDs) == 0 && req.Filters == nil {
		return fmt.Errorf("%w: either explicit ids or filters must be provided", ErrInvalidInput)
	}
	for _, id := range req.ExplicitIDs {
		if id <= 0 {
			return fmt.Errorf("%w: availability id must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// checkStaffReferences проверяет назначаемых сотрудников по справочнику.
// Недоступность FleetService операцию не блокирует - проверка
// пропускается с записью в лог
func (uc *UseCase) checkStaffReferences(ctx context.Context, plan domain.Plan) error {
	raw, ok := plan.Patch[domain.PatchStaffIDs]
	if !ok {
		return nil
	}

	staff, ok := raw.(domain.StaffPatch)
	if !ok || len(staff.StaffIDs) == 0 {
		return nil
	}

	missingID, err := uc.fleetClient.CheckStaffExist(ctx, staff.StaffIDs)
	if err != nil {
		if errors.Is(err, fleetClient.ErrServiceDegraded) {
			uc.logger.Warn("BulkApply: staff reference check skipped: %v", err)
			return nil
		}
		if errors.Is(err, fleetClient.ErrStaffNotFound) {
			uc.logger.Warn("BulkApply: staff id=%d not found", missingID)
			return ErrStaffNotFound
		}
		uc.logger.Error("BulkApply: staff reference check failed: %v", err)
		return fmt.Errorf("%w: staff reference check failed: %v", ErrBulkExecution, err)
	}

	return nil
}

// checkVehicleReference проверяет назначаемый транспорт по справочнику.
// Явная очистка поля (nil в patch) проверки не требует; недоступность
// FleetService операцию не блокирует
func (uc *UseCase) checkVehicleReference(ctx context.Context, plan domain.Plan) error {
	raw, ok := plan.Patch[domain.PatchVehicleID]
	if !ok || raw == nil {
		return nil
	}

	vehicleID, ok := raw.(int64)
	if !ok {
		return nil
	}

	if err := uc.fleetClient.CheckVehicleExists(ctx, vehicleID); err != nil {
		if errors.Is(err, fleetClient.ErrServiceDegraded) {
			uc.logger.Warn("BulkApply: vehicle reference check skipped: %v", err)
			return nil
		}
		if errors.Is(err, fleetClient.ErrVehicleNotFound) {
			uc.logger.Warn("BulkApply: vehicle id=%d not found", vehicleID)
			return ErrVehicleNotFound
		}
		uc.logger.Error("BulkApply: vehicle reference check failed: %v", err)
		return fmt.Errorf("%w: vehicle reference check failed: %v", ErrBulkExecution, err)
	}

	return nil
}
