package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/api/http/presenter"
	"github.com/artem13815/rirekisho/pkg/interview"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{session.ErrNotFound, http.StatusNotFound, "session not found"},
		{fmt.Errorf("load draft: %w", resume.ErrNotFound), http.StatusNotFound, "resume draft not found"},
		{session.ErrConflict, http.StatusConflict, "session was updated concurrently"},
		{fmt.Errorf("%w: bad json", interview.ErrExtraction), http.StatusBadGateway, interview.Apology},
		{interview.ErrUnsupportedImport, http.StatusNotImplemented, interview.ErrUnsupportedImport.Error()},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return writeError(c, logger.Nop(), err) })

		resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, rerr)
		var body presenter.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.message, body.Message)
	}
}
