package create_booking

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда слот не найден
	ErrAvailabilityNotFound = errors.New("create_booking: availability not found")

	// ErrZeroPassengers возвращается для брони без пассажиров
	ErrZeroPassengers = errors.New("create_booking: booking must have at least one passenger")

	// ErrNegativeOverride возвращается для отрицательного override-итога
	ErrNegativeOverride = errors.New("create_booking: override total must not be negative")

	// ErrCapacityExceeded возвращается, когда бронирование превышает
	// оставшуюся вместимость слота. Авторитетная проверка - в момент
	// сохранения, внутри сериализуемой транзакции
	ErrCapacityExceeded = errors.New("create_booking: not enough remaining capacity")

	// ErrNotPriceable возвращается, когда у слота нет прайс-листа или
	// для выбранного тира нет тарифных строк
	ErrNotPriceable = errors.New("create_booking: booking cannot be priced yet")

	// ErrUnknownTier возвращается при неизвестном тире
	ErrUnknownTier = errors.New("create_booking: unknown pricing tier")

	// ErrCashNotAllowed возвращается при выборе наличных в статусе pay_later
	ErrCashNotAllowed = errors.New("create_booking: cash is not allowed for pay_later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
