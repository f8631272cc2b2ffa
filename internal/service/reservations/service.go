package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	reservationRepo "github.com/rameshwari28/QuickCourt/internal/infra/storage/reservation"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	cache           SlotsCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	cache SlotsCache,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		cache:           cache,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование,
// владелец площадки - бронирования своей площадки, админ - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.Role) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// GetUserReservations получает историю бронирований пользователя
// Фильтр: all | upcoming | past | confirmed | cancelled.
// upcoming и past делят историю по моменту начала (дата + время) на чтении
// и не зависят от статуса; статус completed никогда не пишется в хранилище
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, filter=%q", req.UserID, req.Filter)

	filter, err := models.ToUserReservationsFilter(req.Filter)
	if err != nil {
		s.logger.Warn("GetUserReservations: invalid filter=%q for user=%d", req.Filter, req.UserID)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Для статусных фильтров отдаём выборку на сторону БД
	var domainStatus *domain.ReservationStatus
	switch filter {
	case domain.FilterConfirmed:
		status := domain.StatusConfirmed
		domainStatus = &status
	case domain.FilterCancelled:
		status := domain.StatusCancelled
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// Временные фильтры делят историю по моменту начала (дата + время),
	// независимо от статуса: отменённые бронирования попадают в обе выборки
	switch filter {
	case domain.FilterUpcoming:
		reservations = filterByStartTime(reservations, now, false)
	case domain.FilterPast:
		reservations = filterByStartTime(reservations, now, true)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations, now), nil
}

// GetVenueReservations получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по корту, периоду, статусу и включению отменённых бронирований
// Доступно только владельцу площадки и админу
//
// Примеры использования:
// - Все активные бронирования: GetVenueReservations(ctx, &GetVenueReservationsRequest{VenueID: 123, UserID: 456, Role: "facility_owner"})
// - Бронирования конкретного корта: указать CourtID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetVenueReservations: fetching reservations for venue=%d, user=%d", req.VenueID, req.UserID)

	// Проверяем права доступа к площадке
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID, req.Role); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: successfully fetched %d reservations for venue=%d", len(reservations), req.VenueID)
	return models.FromDomainReservationList(reservations, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование,
// владелец площадки и админ - любое бронирование площадки.
// Отменить можно только подтверждённое и ещё не начавшееся бронирование.
// Освобождённый интервал сразу доступен для новых бронирований
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Проверяем права доступа
	if reservation.UserID != req.UserID {
		if err := s.checkManagerAccess(ctx, reservation.VenueID, req.UserID, req.Role); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	// Начавшееся бронирование отменить нельзя
	if reservation.HasStarted(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: reservation id=%d has already started", reservationID)
		return ErrAlreadyStarted
	}

	// Отменяем бронирование
	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Инвалидируем кеш доступности (best effort)
	if err := s.cache.Invalidate(ctx, reservation.CourtID, reservation.Date); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slots cache for court=%d: %v", reservation.CourtID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование, владелец площадки и админ - бронирования площадки
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64, role domain.Role) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if reservation.UserID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, reservation.VenueID, userID, role); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь управляет площадкой
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64, role domain.Role) error {
	// Админ управляет любой площадкой, поход за площадкой не нужен
	if role == domain.RoleAdmin {
		return nil
	}

	// Получаем площадку через VenueService
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - venue service error: %v", ErrInternal, err)
	}

	if !role.CanManageVenue(userID, venue.OwnerID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// filterByStartTime делит бронирования на прошедшие и предстоящие по моменту
// начала. Бронирование считается прошедшим, как только его начало позади,
// даже если оно ещё идёт
func filterByStartTime(reservations []*domain.Reservation, now time.Time, past bool) []*domain.Reservation {
	filtered := make([]*domain.Reservation, 0, len(reservations))
	for _, res := range reservations {
		startsAt, err := res.StartsAt()
		if err != nil {
			continue
		}
		if startsAt.Before(now) == past {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
