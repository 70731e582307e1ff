package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
	"github.com/yanqian/atmos-assistant/internal/domain/speech"
	apperrors "github.com/yanqian/atmos-assistant/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	assistantSvc assistant.Service
	speechSvc    speech.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(assistantSvc assistant.Service, speechSvc speech.Service, logger *slog.Logger) *Handler {
	return &Handler{
		assistantSvc: assistantSvc,
		speechSvc:    speechSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Chat runs the weather-aware chat pipeline. Missing or unresolvable
// locations come back as HTTP 200 needsLocation payloads; only upstream
// failures produce an error status.
func (h *Handler) Chat(c *gin.Context) {
	var req assistant.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.assistantSvc.Chat(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "geocode_error"):
			code = "geocode_error"
		case apperrors.IsCode(err, "weather_error"):
			code = "weather_error"
		case apperrors.IsCode(err, "llm_error"):
			code = "llm_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Speak synthesizes reply text to audio and streams the bytes back.
func (h *Handler) Speak(c *gin.Context) {
	var req speech.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	audio, err := h.speechSvc.Speak(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "tts_error"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.Data(http.StatusOK, audio.ContentType, audio.Data)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
