package models

import (
	"errors"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidFilter возвращается при некорректном значении фильтра
	ErrInvalidFilter = errors.New("invalid reservations filter")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64       `json:"userId"`
	Role               domain.Role `json:"role"`
	CancellationReason string      `json:"cancellationReason"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64  `json:"userId"`
	Filter string `json:"filter,omitempty"` // all | upcoming | past | confirmed | cancelled
}

// GetVenueReservationsRequest запрос на получение бронирований площадки
type GetVenueReservationsRequest struct {
	UserID           int64       `json:"userId"`
	Role             domain.Role `json:"role"`
	VenueID          int64       `json:"venueId"`
	CourtID          *int64      `json:"courtId,omitempty"`          // Фильтр по корту (опционально)
	StartDate        *time.Time  `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time  `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string     `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool        `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueReservationsRequest) ToDomainFilter() (domain.VenueReservationsFilter, error) {
	filter := domain.VenueReservationsFilter{
		VenueID:          r.VenueID,
		CourtID:          r.CourtID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	VenueID         int64   `json:"venueId"`
	CourtID         int64   `json:"courtId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`

	// Денормализованные данные
	CourtName string `json:"courtName"`
	VenueName string `json:"venueName"`
	SportType string `json:"sportType"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
// Статус пересчитывается на момент now: подтверждённое бронирование,
// которое уже закончилось, отдаётся как completed
func FromDomainReservation(res *domain.Reservation, now time.Time) *ReservationResponse {
	if res == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 res.ID,
		UserID:             res.UserID,
		VenueID:            res.VenueID,
		CourtID:            res.CourtID,
		Date:               res.Date.Format(domain.DateFormat),
		StartTime:          res.StartTime.String(),
		EndTime:            res.EndTime.String(),
		DurationMinutes:    res.DurationMinutes,
		Status:             string(res.EffectiveStatus(now)),
		TotalPrice:         res.TotalPrice,
		CourtName:          res.CourtName,
		VenueName:          res.VenueName,
		SportType:          res.SportType,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if res.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(res.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, now time.Time) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if resResp := FromDomainReservation(res, now); resResp != nil {
			resp.Reservations[i] = *resResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToUserReservationsFilter конвертирует строку фильтра в domain фильтр
// Пустая строка трактуется как "all"
func ToUserReservationsFilter(filter string) (domain.UserReservationsFilter, error) {
	if filter == "" {
		return domain.FilterAll, nil
	}

	f := domain.UserReservationsFilter(filter)
	if !f.Valid() {
		return "", ErrInvalidFilter
	}

	return f, nil
}
