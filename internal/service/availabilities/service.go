package availabilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	"github.com/funinthesundocs/epictours/internal/service/availabilities/models"
)

// Service сервис для работы со слотами
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		logger:           logger,
	}
}

// List получает слоты по фильтрам с производной занятостью
// Занятость считается по живому набору активных бронирований одной
// батчевой выборкой - сохраненный счетчик не используется
func (s *Service) List(ctx context.Context, filters *domain.FilterSet) (*models.AvailabilityListResponse, error) {
	s.logger.Info("List: fetching availabilities, filters=%d", filterCount(filters))

	availabilities, err := s.availabilityRepo.List(ctx, filters)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := &models.AvailabilityListResponse{
		Availabilities: make([]*models.AvailabilityResponse, 0, len(availabilities)),
	}

	if len(availabilities) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(availabilities))
	for _, a := range availabilities {
		ids = append(ids, a.ID)
	}

	activeBookings, err := s.bookingRepo.ListActiveByAvailabilityIDs(ctx, ids)
	if err != nil {
		s.logger.Error("List: failed to fetch active bookings: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	bookingsBySlot := make(map[int64][]*domain.Booking, len(availabilities))
	for _, b := range activeBookings {
		bookingsBySlot[b.AvailabilityID] = append(bookingsBySlot[b.AvailabilityID], b)
	}

	for _, a := range availabilities {
		capacity := domain.ComputeCapacity(a.MaxCapacity, bookingsBySlot[a.ID], 0, 0)
		result.Availabilities = append(result.Availabilities, models.FromDomainAvailability(a, capacity))
	}
	result.Total = len(result.Availabilities)

	s.logger.Info("List: successfully fetched %d availabilities", result.Total)
	return result, nil
}

// GetByID получает один слот с производной занятостью
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetByID: fetching availability id=%d", id)

	availability, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetByID: availability id=%d not found", id)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("GetByID: repository error for availability id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	activeBookings, err := s.bookingRepo.ListActiveByAvailability(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to fetch active bookings for availability id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	capacity := domain.ComputeCapacity(availability.MaxCapacity, activeBookings, 0, 0)
	return models.FromDomainAvailability(availability, capacity), nil
}

// Update применяет набор директив как patch к одному слоту
// Одиночное редактирование использует те же директивы, что и массовое -
// delete здесь запрещен, для удаления есть отдельное действие
func (s *Service) Update(ctx context.Context, id int64, directives *domain.DirectiveSet) error {
	s.logger.Info("Update: updating availability id=%d, directives=%d", id, directives.Len())

	if directives.HasDelete() {
		return ErrDeleteNotAllowed
	}
	if directives.Len() == 0 {
		return ErrNoUpdates
	}

	if err := validateDirectives(directives); err != nil {
		s.logger.Warn("Update: directive validation failed for availability id=%d: %v", id, err)
		return err
	}

	plan := domain.BuildPlan([]int64{id}, directives)

	if err := s.availabilityRepo.Update(ctx, id, plan.Patch); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Update: availability id=%d not found", id)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Update: failed to update availability id=%d: %v", id, err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated availability id=%d", id)
	return nil
}

// Delete удаляет слот
// Слот с активными бронированиями удалить нельзя - возвращается явная
// ошибка "сначала отмените бронирования", а не жесткий сбой
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting availability id=%d", id)

	withBookings, err := s.bookingRepo.ListAvailabilityIDsWithActiveBookings(ctx, []int64{id})
	if err != nil {
		s.logger.Error("Delete: failed to check active bookings for availability id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if len(withBookings) > 0 {
		s.logger.Warn("Delete: availability id=%d has active bookings", id)
		return ErrHasActiveBookings
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Delete: availability id=%d not found", id)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: failed to delete availability id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted availability id=%d", id)
	return nil
}

// validateDirectives проверяет значения директив одиночного редактирования
func validateDirectives(directives *domain.DirectiveSet) error {
	for _, d := range directives.All() {
		switch v := d.(type) {
		case domain.CapacityDirective:
			if v.Capacity < 0 || v.Capacity > domain.MaxCapacityLimit {
				return fmt.Errorf("%w: capacity must be in [0, %d]", ErrInvalidInput, domain.MaxCapacityLimit)
			}
		case domain.OnlineStatusDirective:
			if !v.Status.IsValid() {
				return fmt.Errorf("%w: unknown online status %q", ErrInvalidInput, v.Status)
			}
		case domain.StartTimeDirective:
			if v.StartTime != nil {
				if err := v.StartTime.Validate(); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidInput, err)
				}
			}
		case domain.DurationDirective:
			if v.Hours != nil && *v.Hours <= 0 {
				return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
			}
		case domain.PrivateNoteDirective:
			if v.Note != nil && len(*v.Note) > domain.MaxPrivateNoteLength {
				return fmt.Errorf("%w: private note too long", ErrInvalidInput)
			}
		case domain.StaffDirective:
			if len(v.StaffIDs) == 0 {
				return domain.ErrEmptyStaffSelection
			}
		}
	}
	return nil
}

func filterCount(filters *domain.FilterSet) int {
	if filters == nil {
		return 0
	}
	return filters.Len()
}
