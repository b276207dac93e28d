package pricing

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда прайс-лист не найден
	ErrScheduleNotFound = errors.New("pricing.service: pricing schedule not found")

	// ErrUnknownTier возвращается при запросе тира, которого нет в прайс-листе
	ErrUnknownTier = errors.New("pricing.service: unknown pricing tier")

	// ErrNoRatesForTier возвращается, когда для пары (прайс-лист, тир)
	// нет тарифных строк. Вызывающий трактует это как "забронировать
	// пока нельзя", а не как нулевую цену
	ErrNoRatesForTier = errors.New("pricing.service: no rates for this tier")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing.service: internal error")
)
