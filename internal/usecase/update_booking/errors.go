package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrBookingCancelled возвращается при попытке редактировать
	// отмененное бронирование
	ErrBookingCancelled = errors.New("update_booking: cancelled booking cannot be edited")

	// ErrAvailabilityNotFound возвращается, когда слот брони не найден
	ErrAvailabilityNotFound = errors.New("update_booking: availability not found")

	// ErrZeroPassengers возвращается для брони без пассажиров
	ErrZeroPassengers = errors.New("update_booking: booking must have at least one passenger")

	// ErrNegativeOverride возвращается для отрицательного override-итога
	ErrNegativeOverride = errors.New("update_booking: override total must not be negative")

	// ErrCapacityExceeded возвращается, когда новая разбивка пассажиров
	// превышает вместимость слота (собственные места брони исключены
	// из базовой занятости)
	ErrCapacityExceeded = errors.New("update_booking: not enough remaining capacity")

	// ErrNotPriceable возвращается, когда бронь нельзя пересчитать
	ErrNotPriceable = errors.New("update_booking: booking cannot be priced yet")

	// ErrUnknownTier возвращается при неизвестном тире
	ErrUnknownTier = errors.New("update_booking: unknown pricing tier")

	// ErrCashNotAllowed возвращается при выборе наличных в статусе pay_later
	ErrCashNotAllowed = errors.New("update_booking: cash is not allowed for pay_later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
