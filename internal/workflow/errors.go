package workflow

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия бронирования не найдена
	ErrSessionNotFound = errors.New("workflow: session not found")

	// ErrNoUser возвращается при попытке начать сессию без идентификатора пользователя
	ErrNoUser = errors.New("workflow: user identifier is required")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния
	ErrInvalidTransition = errors.New("workflow: invalid state transition")

	// ErrConfirmInFlight возвращается при попытке перехода, пока подтверждение выполняется
	ErrConfirmInFlight = errors.New("workflow: confirmation is in flight")

	// ErrSlotUnavailable возвращается, когда выбранный интервал недоступен
	ErrSlotUnavailable = errors.New("workflow: slot is unavailable")

	// ErrSlotConflict возвращается, когда интервал заняли раньше нас
	ErrSlotConflict = errors.New("workflow: slot was taken by a concurrent booking")

	// ErrBusy возвращается при таймауте подтверждения, можно повторить попытку
	ErrBusy = errors.New("workflow: ledger is busy, retry confirmation")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("workflow: internal error")
)
