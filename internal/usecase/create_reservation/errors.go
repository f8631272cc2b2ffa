package create_reservation

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrCourtInactive возвращается, когда корт выключен из бронирования
	ErrCourtInactive = errors.New("create_reservation: court is not active")

	// ErrVenueNotApproved возвращается, когда площадка ещё не одобрена
	ErrVenueNotApproved = errors.New("create_reservation: venue is not approved")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNotice
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrOutOfHours возвращается, когда интервал не попадает целиком в рабочие часы корта
	ErrOutOfHours = errors.New("create_reservation: interval is outside operating hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с подтверждённым
	// бронированием: гонка проиграна другому запросу, можно перечитать
	// доступность и выбрать другой интервал
	ErrSlotConflict = errors.New("create_reservation: interval overlaps an existing reservation")

	// ErrBusy возвращается, когда транзакция не уложилась в отведённое время
	// или исчерпала повторы сериализации: временная ошибка, запрос можно
	// повторить с тем же интервалом
	ErrBusy = errors.New("create_reservation: ledger is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
