package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/rirekisho/api/http/presenter"
	"github.com/artem13815/rirekisho/pkg/interview"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/security/jwt"
	"github.com/artem13815/rirekisho/pkg/session"
)

// writeError maps domain errors onto HTTP statuses.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "session not found")
	case errors.Is(err, resume.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "resume draft not found")
	case errors.Is(err, session.ErrInvalidMessage):
		return presenter.Error(c, http.StatusBadRequest, "role and content are required")
	case errors.Is(err, session.ErrConflict):
		return presenter.Error(c, http.StatusConflict, "session was updated concurrently")
	case errors.Is(err, resume.ErrUnsupportedFormat), errors.Is(err, resume.ErrUnreadableDocument):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, interview.ErrUnsupportedImport):
		return presenter.Error(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, interview.ErrExtraction):
		return presenter.Error(c, http.StatusBadGateway, interview.Apology)
	default:
		log.Error("request failed", "path", c.Path(), "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}

func currentUser(c *fiber.Ctx) (interview.User, bool) {
	id, ok := jwt.UserID(c)
	if !ok {
		return interview.User{}, false
	}
	return interview.User{ID: id, Email: jwt.Email(c)}, true
}

func unauthorized(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
}
