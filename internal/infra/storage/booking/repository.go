package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/pkg/dbmetrics"
	"github.com/funinthesundocs/epictours/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"availability_id",
	"status",
	"passengers",
	"option_values",
	"notes",
	"payment_status",
	"payment_method",
	"amount_paid",
	"override_total",
	"promo_code",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается только внутри сериализуемой транзакции usecase'а создания -
// проверка вместимости слота и вставка должны быть атомарны
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	passengers, optionValues, err := encodePayloads(b)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"availability_id",
			"status",
			"passengers",
			"option_values",
			"notes",
			"payment_status",
			"payment_method",
			"amount_paid",
			"override_total",
			"promo_code",
		).
		Values(
			b.AvailabilityID,
			b.Status,
			passengers,
			optionValues,
			b.Notes,
			b.PaymentStatus,
			b.PaymentMethod,
			b.AmountPaid,
			nullDecimal(b.OverrideTotal),
			b.PromoCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// Update обновляет бронирование in-place (та же запись, тот же id)
// Используется при повторном открытии бронирования на редактирование
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	passengers, optionValues, err := encodePayloads(b)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("passengers", passengers).
		Set("option_values", optionValues).
		Set("notes", b.Notes).
		Set("payment_status", b.PaymentStatus).
		Set("payment_method", b.PaymentMethod).
		Set("amount_paid", b.AmountPaid).
		Set("override_total", nullDecimal(b.OverrideTotal)).
		Set("promo_code", b.PromoCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListActiveByAvailability получает активные (неотмененные) бронирования
// слота - входные данные Capacity Accountant'а
// Внутри транзакции добавляет FOR UPDATE: проверка вместимости при создании
// бронирования блокирует конкурирующие вставки
func (r *Repository) ListActiveByAvailability(ctx context.Context, availabilityID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"availability_id": availabilityID}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByAvailability - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailability - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// ListActiveByAvailabilityIDs получает активные бронирования сразу для
// набора слотов - для расчета занятости в списке без N+1 запросов
func (r *Repository) ListActiveByAvailabilityIDs(ctx context.Context, availabilityIDs []int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Expr("availability_id = ANY(?)", pq.Array(availabilityIDs))).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("availability_id ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailabilityIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailabilityIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByAvailabilityIDs - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAvailabilityIDs - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// ListAvailabilityIDsWithActiveBookings возвращает подмножество ids,
// у которых есть хотя бы одно активное бронирование
// Используется для проверки "cancel bookings first" перед удалением
func (r *Repository) ListAvailabilityIDsWithActiveBookings(ctx context.Context, availabilityIDs []int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT availability_id").
		From("bookings").
		Where(squirrel.Expr("availability_id = ANY(?)", pq.Array(availabilityIDs))).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("availability_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityIDsWithActiveBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityIDsWithActiveBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListAvailabilityIDsWithActiveBookings - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityIDsWithActiveBookings - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Cancel мягко отменяет бронирование с указанием причины
// Запись сохраняется для истории; место на слоте освобождается сразу,
// так как занятость всегда пересчитывается по активным бронированиям
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование
// Только для явного действия удаления; для обычного потока использовать Cancel
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// nullDecimal конвертирует *decimal.Decimal в decimal.NullDecimal для БД
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// encodePayloads сериализует JSONB поля бронирования
func encodePayloads(b *domain.Booking) ([]byte, []byte, error) {
	passengers, err := json.Marshal(b.Passengers)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: passengers: %v", ErrEncodePayload, err)
	}

	optionValues, err := json.Marshal(b.OptionValues)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: option_values: %v", ErrEncodePayload, err)
	}

	return passengers, optionValues, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в domain.Booking
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var passengers, optionValues []byte
	var overrideTotal decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.AvailabilityID,
		&b.Status,
		&passengers,
		&optionValues,
		&b.Notes,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.AmountPaid,
		&overrideTotal,
		&b.PromoCode,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(passengers) > 0 {
		if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
			return nil, err
		}
	}
	if len(optionValues) > 0 {
		if err := json.Unmarshal(optionValues, &b.OptionValues); err != nil {
			return nil, err
		}
	}

	if overrideTotal.Valid {
		b.OverrideTotal = &overrideTotal.Decimal
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
