package quote_booking

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда слот не найден
	ErrAvailabilityNotFound = errors.New("quote_booking: availability not found")

	// ErrZeroPassengers возвращается для драфта без пассажиров
	ErrZeroPassengers = errors.New("quote_booking: booking must have at least one passenger")

	// ErrNegativeOverride возвращается для отрицательного override-итога
	ErrNegativeOverride = errors.New("quote_booking: override total must not be negative")

	// ErrNotPriceable возвращается, когда драфт нельзя рассчитать:
	// у слота нет прайс-листа или в тире нет тарифов
	ErrNotPriceable = errors.New("quote_booking: booking cannot be priced yet")

	// ErrUnknownTier возвращается при неизвестном тире
	ErrUnknownTier = errors.New("quote_booking: unknown pricing tier")

	// ErrCashNotAllowed возвращается при выборе наличных в статусе pay_later
	ErrCashNotAllowed = errors.New("quote_booking: cash is not allowed for pay_later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_booking: internal error")
)
