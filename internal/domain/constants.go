package domain

// Default configuration values
const (
	DefaultGranularityMinutes      = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMaxDurationMinutes      = 240
)

// Business validation constants
const (
	MinGranularityMinutes          = 5
	MaxGranularityMinutes          = 120
	MaxCancellationReasonLength    = 500
	MinutesPerHour                 = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие интервал на календаре корта
// Используется при проверке доступности слотов
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
