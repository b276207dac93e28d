package bulk_apply

import "errors"

var (
	// ErrNoDirectives возвращается для плана без директив
	ErrNoDirectives = errors.New("bulk_apply: no directives selected")

	// ErrNoCandidates возвращается, когда фильтры не совпали ни с одним слотом
	ErrNoCandidates = errors.New("bulk_apply: no availabilities matched")

	// ErrEmptyStaffSelection возвращается для staff-директивы с пустым
	// списком сотрудников
	ErrEmptyStaffSelection = errors.New("bulk_apply: staff directive requires at least one staff id")

	// ErrStaffNotFound возвращается, когда назначаемый сотрудник
	// отсутствует в справочнике
	ErrStaffNotFound = errors.New("bulk_apply: staff member not found")

	// ErrVehicleNotFound возвращается, когда назначаемый транспорт
	// отсутствует в справочнике
	ErrVehicleNotFound = errors.New("bulk_apply: vehicle not found")

	// ErrHasActiveBookings блокирует массовое удаление: среди кандидатов
	// есть слоты с активными бронированиями
	ErrHasActiveBookings = errors.New("bulk_apply: some availabilities have active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bulk_apply: invalid input data")

	// ErrBulkExecution возвращается, когда транзакция применения плана
	// не прошла; ни одна запись при этом не изменена
	ErrBulkExecution = errors.New("bulk_apply: bulk mutation failed, no records changed")
)
