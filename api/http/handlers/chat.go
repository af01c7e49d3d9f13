package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/api/http/presenter"
	"github.com/artem13815/rirekisho/pkg/interview"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/session"
)

// ChatHandler exposes the interview sessions and turns.
type ChatHandler struct {
	sessions  session.Store
	interview interview.Service
	log       *logger.Logger
}

func NewChatHandler(sessions session.Store, svc interview.Service, log *logger.Logger) *ChatHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ChatHandler{sessions: sessions, interview: svc, log: log}
}

func sessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// ListSessions returns the caller's sessions, most recently updated first.
// @Summary  List chat sessions
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Param    limit  query int false "page size (default 20, max 200)"
// @Param    offset query int false "offset"
// @Success  200 {object} map[string]any
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /chat/sessions [get]
func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := parseLimitOffset(c, 20)
	items, err := h.sessions.ListSessionsForUser(c.Context(), u.ID, limit, offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": items, "limit": limit, "offset": offset})
}

type createSessionRequest struct {
	Title string `json:"title"`
}

// CreateSession starts an empty session at the education step.
// @Summary  Create chat session
// @Tags     chat
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    input body createSessionRequest false "optional title"
// @Success  201 {object} session.Session
// @Router   /chat/sessions [post]
func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
	}
	s, err := h.sessions.CreateSession(c.Context(), u.ID, req.Title)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, s)
}

// GetSession returns a session with its full message log.
// @Summary  Get chat session
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "session id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := sessionID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	s, msgs, err := h.sessions.GetSessionWithMessages(c.Context(), u.ID, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"session": s, "messages": msgs})
}

type updateSessionRequest struct {
	CurrentStep string `json:"currentStep"`
	IsCompleted bool   `json:"isCompleted"`
}

// UpdateSession sets the step directly. Unknown steps become education.
// @Summary  Update chat session step
// @Tags     chat
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path string true "session id"
// @Param    input body updateSessionRequest true "step"
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /chat/sessions/{id} [put]
func (h *ChatHandler) UpdateSession(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := sessionID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	var req updateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.sessions.UpdateStep(c.Context(), u.ID, id, session.Step(req.CurrentStep), req.IsCompleted); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteSession removes a session and its messages.
// @Summary  Delete chat session
// @Tags     chat
// @Security BearerAuth
// @Param    id path string true "session id"
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /chat/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := sessionID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	if err := h.sessions.DeleteSession(c.Context(), u.ID, id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type appendMessageRequest struct {
	Role          string          `json:"role"`
	Content       string          `json:"content"`
	ExtractedData json.RawMessage `json:"extractedData" swaggertype:"object"`
}

// AppendMessage stores a raw message in the session log.
// @Summary  Append chat message
// @Tags     chat
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path string true "session id"
// @Param    input body appendMessageRequest true "message"
// @Success  201 {object} session.Message
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /chat/sessions/{id}/messages [post]
func (h *ChatHandler) AppendMessage(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := sessionID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	var req appendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	m, err := h.sessions.AppendMessage(c.Context(), u.ID, id, session.Role(strings.TrimSpace(req.Role)), req.Content, req.ExtractedData)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, m)
}

type turnRequest struct {
	Message string `json:"message"`
}

// Turn processes one user message: extraction, step transition, draft update.
// @Summary  Send interview message
// @Tags     chat
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path string true "session id"
// @Param    input body turnRequest true "user message"
// @Success  200 {object} interview.TurnResult
// @Failure  404 {object} presenter.ErrorResponse
// @Failure  502 {object} presenter.ErrorResponse "reply could not be generated"
// @Router   /chat/sessions/{id}/turns [post]
func (h *ChatHandler) Turn(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := sessionID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	var req turnRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.interview.Turn(c.Context(), u, id, req.Message)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// Start returns the active interview, opening one if the user has none.
// @Summary  Start or resume interview
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} interview.Conversation
// @Router   /chat/start [post]
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	conv, err := h.interview.Start(c.Context(), u)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, conv)
}

// Restart drops the interview and the collected résumé sections.
// @Summary  Restart interview
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} interview.Conversation
// @Router   /chat/restart [post]
func (h *ChatHandler) Restart(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	conv, err := h.interview.Restart(c.Context(), u)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, conv)
}
