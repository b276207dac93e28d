package fleetservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда транспорт не найден
	ErrVehicleNotFound = errors.New("fleetservice client: vehicle not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("fleetservice client: staff member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fleetservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fleetservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Означает, что FleetService недоступен и проверку справочных ссылок
	// следует пропустить, а не блокировать операцию
	ErrServiceDegraded = errors.New("fleetservice unavailable: graceful degradation applied")
)
