package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/rirekisho/api/http/presenter"
	"github.com/artem13815/rirekisho/pkg/interview"
	"github.com/artem13815/rirekisho/pkg/logger"
)

// ResumeHandler serves the résumé draft assembled by the interview.
type ResumeHandler struct {
	svc interview.Service
	log *logger.Logger
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(svc interview.Service, maxBytes int64, log *logger.Logger) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ResumeHandler{svc: svc, maxBytes: maxBytes, log: log}
}

// Get возвращает текущий черновик резюме пользователя.
// @Summary  Текущий черновик резюме
// @Tags     resume
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} resume.Draft
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /resume [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	d, err := h.svc.Draft(c.Context(), u)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// Import извлекает текст из загруженного резюме (PDF/DOCX) и переносит
// найденные данные в черновик.
// @Summary  Импорт резюме из файла
// @Tags     resume
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "Файл резюме (PDF или DOCX)"
// @Security BearerAuth
// @Success  200 {object} interview.TurnResult
// @Failure  400 {object} presenter.ErrorResponse "Ошибка валидации или чтения файла"
// @Failure  501 {object} presenter.ErrorResponse "LLM не настроена"
// @Failure  502 {object} presenter.ErrorResponse
// @Router   /resume/import [post]
func (h *ResumeHandler) Import(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Import(c.Context(), u, fh.Filename, data)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
