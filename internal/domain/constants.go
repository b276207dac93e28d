package domain

// Default pricing tier used when the caller does not pick one explicitly
const DefaultTierName = "Retail"

// Business validation constants
const (
	MaxCapacityLimit            = 1000
	MaxHeadlineLength           = 200
	MaxNotesLength              = 500
	MaxPrivateNoteLength        = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих места на слоте
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
}

// InactiveStatuses список статусов, освобождающих места на слоте
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
