package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// Ask answers a chat question with the best FAQ match and follow-up suggestions.
func (h *Handler) Ask(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trending returns the most asked questions.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Status reports the loaded knowledge base, including any load failure notice.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.faqSvc.Status(c.Request.Context()))
}

// Greeting returns the welcome message shown when a chat opens.
func (h *Handler) Greeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.faqSvc.Greeting()})
}

// Reload fetches the FAQ table again.
func (h *Handler) Reload(c *gin.Context) {
	status, err := h.faqSvc.Reload(c.Request.Context())
	if err != nil {
		httpErr := fromDomainError(err, "faq_failed")
		if apperrors.IsCode(err, apperrors.CodeLoadFailed) && status.Notice != "" {
			httpErr.Message = status.Notice
		}
		abortWithError(c, httpErr)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Health is a liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
