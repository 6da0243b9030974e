package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/models"
	"alfredoptarigan/pdf-profiler/internal/services"
)

const fallbackWarning = "Model response required JSON extraction"

type ProfileHandler struct {
	profileService services.ProfileService
	storageService services.StorageService
	maxFileSize    int64
	excerptChars   int
	logger         *zap.Logger
}

func NewProfileHandler(
	profileService services.ProfileService,
	storageService services.StorageService,
	maxFileSize int64,
	excerptChars int,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		excerptChars:   excerptChars,
		logger:         logger,
	}
}

// HandleProcessPDF handles POST /process-pdf
func (h *ProfileHandler) HandleProcessPDF(c *fiber.Ctx) (err error) {
	requestID, _ := c.Locals("requestid").(string)
	logger := h.logger.With(zap.String("request_id", requestID))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.respond(c, "invalid", fiber.StatusBadRequest, models.ErrorResponse{
			Error: "No file uploaded. Please upload a PDF as form field 'file'.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return h.respond(c, "invalid", fiber.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filePath, err := h.storageService.SaveTemp(fileHeader)
	if err != nil {
		if errors.Is(err, services.ErrNotPDF) {
			return h.respond(c, "invalid", fiber.StatusBadRequest, models.ErrorResponse{
				Error: "Uploaded file is not a PDF",
			})
		}
		logger.Error("failed to save upload", zap.Error(err))
		return h.respond(c, "unexpected", fiber.StatusInternalServerError, models.ErrorResponse{
			Error: fmt.Sprintf("Unexpected error: %v", err),
		})
	}
	defer h.storageService.Remove(filePath)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while processing PDF", zap.Any("panic", r), zap.Stack("stack"))
			err = h.respond(c, "unexpected", fiber.StatusInternalServerError, models.ErrorResponse{
				Error: fmt.Sprintf("Unexpected error: %v", r),
			})
		}
	}()

	logger.Info("processing PDF",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size))

	outcome, err := h.profileService.ProcessPDF(c.UserContext(), filePath)
	if err != nil {
		return h.respondError(c, logger, err)
	}

	response := models.ProcessResponse{Summary: outcome.Result}
	if outcome.FellBack() {
		response.Warning = fallbackWarning
		response.RawResponse = services.TruncateChars(outcome.RawResponse, h.excerptChars)
	}

	logger.Debug("profile request", zap.String("stage", string(services.StageResponded)))
	return h.respond(c, string(outcome.Layer), fiber.StatusOK, response)
}

func (h *ProfileHandler) respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var upstreamErr *services.UpstreamError
	var requestErr *services.RequestError

	switch {
	case errors.Is(err, services.ErrEmptyDocument):
		return h.respond(c, "empty_document", fiber.StatusUnprocessableEntity, models.ErrorResponse{
			Error: "No readable text found in PDF",
		})
	case errors.As(err, &upstreamErr):
		details := upstreamErr.Body
		if details == "" {
			details = "No response details"
		}
		return h.respond(c, "upstream_error", fiber.StatusBadGateway, models.ErrorResponse{
			Error:   fmt.Sprintf("Failed to get response from %s: Status %d", upstreamErr.Provider, upstreamErr.StatusCode),
			Details: details,
		})
	case errors.As(err, &requestErr):
		return h.respond(c, "request_error", fiber.StatusBadGateway, models.ErrorResponse{
			Error: fmt.Sprintf("Request to %s failed: %v", requestErr.Provider, requestErr.Cause),
		})
	default:
		logger.Error("unexpected error while processing PDF", zap.Error(err))
		return h.respond(c, "unexpected", fiber.StatusInternalServerError, models.ErrorResponse{
			Error: fmt.Sprintf("Unexpected error: %v", err),
		})
	}
}

func (h *ProfileHandler) respond(c *fiber.Ctx, outcome string, status int, body any) error {
	services.ProfileRequestsTotal.WithLabelValues(outcome).Inc()
	return c.Status(status).JSON(body)
}
