package booking_session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rameshwari28/QuickCourt/internal/api/handlers"
	"github.com/rameshwari28/QuickCourt/internal/api/middleware"
	"github.com/rameshwari28/QuickCourt/internal/workflow"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

const (
	msgMissingUser        = "отсутствует идентификатор пользователя"
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата"
	msgInvalidStartTime   = "некорректное время начала"
	msgSessionNotFound    = "сессия бронирования не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход недопустим в текущем состоянии сессии"
	msgConfirmInFlight    = "подтверждение уже выполняется"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgSlotConflict       = "слот уже занят другим бронированием"
	msgBusy               = "сервис перегружен, попробуйте позже"
)

type Handler struct {
	manager SessionManager
	logger  Logger
}

func NewHandler(manager SessionManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Start POST /api/v1/booking-sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-sessions - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	role := middleware.GetUserRole(r.Context())

	snap, err := h.manager.StartSession(userID, role)
	if err != nil {
		h.logger.Error("POST /booking-sessions - Failed to start session: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-sessions - Session started: session_id=%s, user_id=%d", snap.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromSnapshot(snap))
}

// Get GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ownedSession(w, r, "GET /booking-sessions/{id}")
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snap))
}

// SelectDate POST /api/v1/booking-sessions/{sessionId}/date
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/date"

	snap, ok := h.ownedSession(w, r, op)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		h.logger.Warn("%s - Invalid date %q: %v", op, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	next, err := h.manager.SelectDate(r.Context(), snap.ID, date)
	if err != nil {
		h.respondTransitionError(w, op, snap.ID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(next))
}

// SelectCourt POST /api/v1/booking-sessions/{sessionId}/court
func (h *Handler) SelectCourt(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/court"

	snap, ok := h.ownedSession(w, r, op)
	if !ok {
		return
	}

	var req SelectCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	next, err := h.manager.SelectCourt(r.Context(), snap.ID, req.CourtID)
	if err != nil {
		h.respondTransitionError(w, op, snap.ID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(next))
}

// SelectSlot POST /api/v1/booking-sessions/{sessionId}/slot
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/slot"

	snap, ok := h.ownedSession(w, r, op)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("%s - Invalid start time %q: %v", op, req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	next, err := h.manager.SelectSlot(r.Context(), snap.ID, startTime, req.DurationMinutes)
	if err != nil {
		h.respondTransitionError(w, op, snap.ID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(next))
}

// Confirm POST /api/v1/booking-sessions/{sessionId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/confirm"

	snap, ok := h.ownedSession(w, r, op)
	if !ok {
		return
	}

	next, err := h.manager.Confirm(r.Context(), snap.ID)
	if err != nil {
		// При конфликте сессия остаётся валидной: отдаём её состояние
		// вместе со статусом ошибки
		if errors.Is(err, workflow.ErrSlotConflict) && next != nil {
			h.logger.Warn("%s - Slot conflict: session_id=%s", op, snap.ID)
			handlers.RespondJSON(w, http.StatusConflict, FromSnapshot(next))
			return
		}
		h.respondTransitionError(w, op, snap.ID, err)
		return
	}

	h.logger.Info("%s - Session booked: session_id=%s, reservation_id=%d", op, snap.ID, next.Result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(next))
}

// Close DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /booking-sessions/{id}"

	snap, ok := h.ownedSession(w, r, op)
	if !ok {
		return
	}

	if err := h.manager.CloseSession(snap.ID); err != nil {
		if errors.Is(err, workflow.ErrSessionNotFound) {
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("%s - Failed to close session: session_id=%s, error=%v", op, snap.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Session closed: session_id=%s", op, snap.ID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// ownedSession извлекает сессию из URL и проверяет, что она принадлежит
// аутентифицированному пользователю
func (h *Handler) ownedSession(w http.ResponseWriter, r *http.Request, op string) (*workflow.Snapshot, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user identity", op)
		handlers.RespondUnauthorized(w, msgMissingUser)
		return nil, false
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("%s - Invalid session ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return nil, false
	}

	snap, err := h.manager.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, workflow.ErrSessionNotFound) {
			h.logger.Warn("%s - Session not found: session_id=%s", op, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return nil, false
		}
		h.logger.Error("%s - Failed to get session: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondInternalError(w)
		return nil, false
	}

	if snap.UserID != userID {
		h.logger.Warn("%s - Access denied: session_id=%s, user_id=%d", op, sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return nil, false
	}

	return snap, true
}

// respondTransitionError мапит ошибки переходов сессии на HTTP статусы
func (h *Handler) respondTransitionError(w http.ResponseWriter, op string, sessionID uuid.UUID, err error) {
	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, workflow.ErrConfirmInFlight):
		h.logger.Warn("%s - Confirmation in flight: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgConfirmInFlight)

	case errors.Is(err, workflow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

	case errors.Is(err, workflow.ErrSlotUnavailable):
		h.logger.Warn("%s - Slot unavailable: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

	case errors.Is(err, workflow.ErrSlotConflict):
		h.logger.Warn("%s - Slot conflict: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

	case errors.Is(err, workflow.ErrBusy):
		h.logger.Warn("%s - Ledger busy: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgBusy)

	default:
		h.logger.Error("%s - Transition failed: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
