package domain

// BookingPolicy политика бронирования сервиса
// Гранулярность календаря едина для всех кортов; длительность бронирования
// всегда положительное кратное гранулярности
type BookingPolicy struct {
	GranularityMinutes      int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничения
	MaxDurationMinutes      int
}

// DefaultPolicy возвращает политику бронирования по умолчанию
func DefaultPolicy() BookingPolicy {
	return BookingPolicy{
		GranularityMinutes:      DefaultGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MaxDurationMinutes:      DefaultMaxDurationMinutes,
	}
}

// ValidDuration проверяет, что длительность положительна, кратна гранулярности
// и не превышает максимум
func (p BookingPolicy) ValidDuration(durationMinutes int) bool {
	if durationMinutes <= 0 || durationMinutes > p.MaxDurationMinutes {
		return false
	}
	return durationMinutes%p.GranularityMinutes == 0
}

// HasAdvanceBookingLimit возвращает true, если глубина бронирования ограничена
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
