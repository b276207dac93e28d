package availability

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/pkg/dbmetrics"
	"github.com/funinthesundocs/epictours/pkg/psqlbuilder"
	"github.com/funinthesundocs/epictours/pkg/types"
)

// availabilityColumns полный набор колонок таблицы availabilities
var availabilityColumns = []string{
	"id",
	"headline",
	"start_date",
	"start_time",
	"duration_hours",
	"max_capacity",
	"online_status",
	"private_note",
	"pickup_route_id",
	"vehicle_id",
	"staff_ids",
	"customer_type_id",
	"pricing_schedule_id",
	"option_schedule_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами (availabilities)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
// Если в контексте есть активная транзакция, добавляет FOR UPDATE -
// проверка вместимости при создании бронирования блокирует слот
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(availabilityColumns...).
		From("availabilities").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	av, err := scanAvailability(row)
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan availability: %v", ErrScanRow, err)
	}

	return av, nil
}

// List получает слоты, удовлетворяющие всем активным фильтрам
// Сортировка: по дате, затем по времени начала (all-day слоты первыми)
func (r *Repository) List(ctx context.Context, filters *domain.FilterSet) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(availabilityColumns...).
		From("availabilities").
		OrderBy("start_date ASC", "start_time ASC NULLS FIRST", "id ASC")

	selectBuilder = applyFilters(selectBuilder, filters)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Availability, 0)
	for rows.Next() {
		av, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, av)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListIDs получает только идентификаторы слотов по фильтрам
// Используется Bulk Mutation Planner'ом для резолва кандидатов
func (r *Repository) ListIDs(ctx context.Context, filters *domain.FilterSet) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("availabilities").
		OrderBy("id ASC")

	selectBuilder = applyFilters(selectBuilder, filters)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update обновляет поля одного слота по patch
// Используется как для одиночного редактирования, так и внутри BulkUpdate
func (r *Repository) Update(ctx context.Context, id int64, patch domain.FieldPatch) error {
	return r.bulkUpdate(ctx, []int64{id}, patch, true)
}

// BulkUpdate применяет один merge patch ко всем слотам из ids
// одним батчевым UPDATE (UPDATE ... WHERE id = ANY($ids))
func (r *Repository) BulkUpdate(ctx context.Context, ids []int64, patch domain.FieldPatch) error {
	return r.bulkUpdate(ctx, ids, patch, false)
}

func (r *Repository) bulkUpdate(ctx context.Context, ids []int64, patch domain.FieldPatch, single bool) error {
	if len(patch) == 0 {
		return ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("availabilities").
		Where(squirrel.Eq{"id": ids}).
		Set("updated_at", squirrel.Expr("NOW()"))

	// Сортируем поля patch для детерминированного SQL
	fields := make([]string, 0, len(patch))
	for field := range patch {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		builder, err := applyPatchField(updateBuilder, field, patch[field])
		if err != nil {
			return err
		}
		updateBuilder = builder
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkUpdate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: BulkUpdate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: BulkUpdate - get rows affected: %v", ErrExecQuery, err)
	}

	if single && rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// Delete удаляет один слот (физическое удаление)
// Проверка отсутствия активных бронирований - на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// BulkDelete удаляет все слоты из ids одним батчевым DELETE
func (r *Repository) BulkDelete(ctx context.Context, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BulkDelete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkDelete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// applyFilters добавляет условия всех активных фильтров к запросу
// Категории фильтров комбинируются через AND, значения внутри категории
// (статусы, дни недели) - через "любое из"
func applyFilters(builder squirrel.SelectBuilder, filters *domain.FilterSet) squirrel.SelectBuilder {
	if filters == nil {
		return builder
	}

	for _, f := range filters.All() {
		switch v := f.(type) {
		case domain.DateRangeFilter:
			// Даты сравниваются как календарные строки, без конвертации
			// часовых поясов
			builder = builder.
				Where(squirrel.GtOrEq{"start_date": v.From.Format(domain.DateFormat)}).
				Where(squirrel.LtOrEq{"start_date": v.To.Format(domain.DateFormat)})

		case domain.OnlineStatusFilter:
			builder = builder.Where(squirrel.Eq{"online_status": v.Statuses})

		case domain.DayOfWeekFilter:
			days := make([]int, 0, len(v.Days))
			for _, d := range v.Days {
				days = append(days, int(d))
			}
			builder = builder.Where(squirrel.Expr(
				"EXTRACT(DOW FROM start_date) = ANY(?)", pq.Array(days)))

		case domain.TimeOfDayFilter:
			// All-day слоты (start_time IS NULL) никогда не попадают
			// в окно по времени
			builder = builder.
				Where(squirrel.NotEq{"start_time": nil}).
				Where(squirrel.GtOrEq{"start_time": v.From.String()}).
				Where(squirrel.LtOrEq{"start_time": v.To.String()})

		case domain.DurationFilter:
			if v.MinHours != nil {
				builder = builder.Where(squirrel.GtOrEq{"duration_hours": *v.MinHours})
			}
			if v.MaxHours != nil {
				builder = builder.Where(squirrel.LtOrEq{"duration_hours": *v.MaxHours})
			}

		case domain.CapacityFilter:
			if v.Min != nil {
				builder = builder.Where(squirrel.GtOrEq{"max_capacity": *v.Min})
			}
			if v.Max != nil {
				builder = builder.Where(squirrel.LtOrEq{"max_capacity": *v.Max})
			}

		case domain.TextFilter:
			pattern := "%" + v.Query + "%"
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"headline": pattern},
				squirrel.ILike{"private_note": pattern},
			})

		case domain.HasBookingsFilter:
			exists := "EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = availabilities.id AND b.status <> 'cancelled')"
			if !v.HasBookings {
				exists = "NOT " + exists
			}
			builder = builder.Where(squirrel.Expr(exists))

		case domain.StaffFilter:
			// Пересечение массивов: слот подходит, если ему назначен
			// хотя бы один из указанных сотрудников
			builder = builder.Where(squirrel.Expr("staff_ids && ?", pq.Array(v.StaffIDs)))

		case domain.CustomerTypeFilter:
			builder = builder.Where(squirrel.Eq{"customer_type_id": v.CustomerTypeID})

		case domain.PickupRouteFilter:
			builder = builder.Where(squirrel.Eq{"pickup_route_id": v.PickupRouteID})
		}
	}

	return builder
}

// applyPatchField добавляет одно поле patch к UPDATE
// nil-значение записывается как явный NULL и очищает поле
func applyPatchField(builder squirrel.UpdateBuilder, field string, value interface{}) (squirrel.UpdateBuilder, error) {
	switch field {
	case domain.PatchOnlineStatus,
		domain.PatchMaxCapacity,
		domain.PatchStartTime,
		domain.PatchDurationHours,
		domain.PatchPickupRouteID,
		domain.PatchVehicleID,
		domain.PatchPricingSchedule,
		domain.PatchOptionSchedule,
		domain.PatchPrivateNote:
		return builder.Set(field, value), nil

	case domain.PatchStaffIDs:
		staff, ok := value.(domain.StaffPatch)
		if !ok {
			return builder, fmt.Errorf("%w: staff_ids patch has unexpected value type %T", ErrUnknownPatchField, value)
		}
		if staff.Merge {
			// Merge-режим: дописываем к текущему назначению без дублей
			return builder.Set(field, squirrel.Expr(
				"ARRAY(SELECT DISTINCT unnest(COALESCE(staff_ids, '{}') || ?::bigint[]) ORDER BY 1)",
				pq.Array(staff.StaffIDs))), nil
		}
		return builder.Set(field, pq.Array(staff.StaffIDs)), nil

	default:
		return builder, fmt.Errorf("%w: %s", ErrUnknownPatchField, field)
	}
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAvailability сканирует одну строку в domain.Availability
func scanAvailability(row rowScanner) (*domain.Availability, error) {
	var av domain.Availability
	var startTime types.TimeString
	var staffIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&av.ID,
		&av.Headline,
		&av.StartDate,
		&startTime,
		&av.DurationHours,
		&av.MaxCapacity,
		&av.OnlineStatus,
		&av.PrivateNote,
		&av.PickupRouteID,
		&av.VehicleID,
		&staffIDs,
		&av.CustomerTypeID,
		&av.PricingScheduleID,
		&av.OptionScheduleID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !startTime.IsZero() {
		av.StartTime = &startTime
	}
	av.StaffIDs = []int64(staffIDs)
	av.CreatedAt = createdAt.Time
	av.UpdatedAt = updatedAt.Time

	return &av, nil
}
