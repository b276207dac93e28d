package availabilities

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда слот не найден
	ErrAvailabilityNotFound = errors.New("availabilities.service: availability not found")

	// ErrHasActiveBookings возвращается при попытке удалить слот с
	// активными бронированиями: сначала нужно отменить бронирования
	ErrHasActiveBookings = errors.New("availabilities.service: availability has active bookings, cancel bookings first")

	// ErrDeleteNotAllowed возвращается, когда в одиночном редактировании
	// передана delete-директива
	ErrDeleteNotAllowed = errors.New("availabilities.service: delete directive is not allowed in a field update")

	// ErrNoUpdates возвращается при запросе редактирования без изменений
	ErrNoUpdates = errors.New("availabilities.service: no field updates given")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availabilities.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availabilities.service: internal error")
)
