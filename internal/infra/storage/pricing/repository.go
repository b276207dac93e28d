package pricing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/pkg/dbmetrics"
	"github.com/funinthesundocs/epictours/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий прайс-листов
// Тарифы редактируются внешним инструментом; поток бронирования их
// только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория прайс-листов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScheduleTiers возвращает тиры прайс-листа в объявленном порядке
// (sort_order). Если прайс-лист не существует - ErrScheduleNotFound
func (r *Repository) GetScheduleTiers(ctx context.Context, scheduleID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Сначала убеждаемся, что прайс-лист существует - пустой список
	// тиров и отсутствующий прайс-лист для вызывающего разные ситуации
	existsQuery, existsArgs, err := psqlbuilder.Select("id").
		From("pricing_schedules").
		Where(squirrel.Eq{"id": scheduleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleTiers - build exists query: %v", ErrBuildQuery, err)
	}

	var foundID int64
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&foundID)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleTiers - scan schedule id: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select("name").
		From("pricing_tiers").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleTiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleTiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: GetScheduleTiers - scan tier: %v", ErrScanRow, err)
		}
		tiers = append(tiers, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetScheduleTiers - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}

// GetRates возвращает тарифные строки для пары (прайс-лист, тир)
// Название типа пассажира джойнится для отображения и в расчетах
// не участвует. Пустой список - валидный результат: "забронировать
// пока нельзя", а не нулевая цена
func (r *Repository) GetRates(ctx context.Context, scheduleID int64, tier string) ([]domain.PricingRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.passenger_type_id",
		"pt.name",
		"r.price",
		"r.tax_percentage",
	).
		From("pricing_rates r").
		Join("passenger_types pt ON pt.id = r.passenger_type_id").
		Where(squirrel.Eq{"r.schedule_id": scheduleID}).
		Where(squirrel.Eq{"r.tier": tier}).
		OrderBy("pt.sort_order ASC", "pt.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]domain.PricingRate, 0)
	for rows.Next() {
		var rate domain.PricingRate
		err := rows.Scan(
			&rate.PassengerTypeID,
			&rate.PassengerTypeName,
			&rate.Price,
			&rate.TaxPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRates - scan rate: %v", ErrScanRow, err)
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRates - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}
