package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ReportHandler struct {
	datasetService *service.DatasetService
	maxFileSize    int64
}

func NewReportHandler(datasetService *service.DatasetService, maxFileSize int64) *ReportHandler {
	return &ReportHandler{
		datasetService: datasetService,
		maxFileSize:    maxFileSize,
	}
}

// Extract handles the POST /reports/extract endpoint
func (h *ReportHandler) Extract(c *gin.Context) {
	ctx := c.Request.Context()
	logger := zerolog.Ctx(ctx)

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.ExtractRequest{Files: form.File["files[]"]}
	if err := request.Validate(h.maxFileSize); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, dto.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.sendError(c, status, err.Error(), err)
		return
	}

	logger.Info().Int("files", len(request.Files)).Msg("received report extraction request")

	records := make([]dto.Record, 0, len(request.Files))
	for _, fh := range request.Files {
		f, err := fh.Open()
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
			return
		}
		records = append(records, h.datasetService.ProcessDocument(ctx, fh.Filename, data))
	}

	ds := service.Assemble(records)
	c.JSON(http.StatusOK, dto.ExtractResponse{
		RunID:       uuid.NewString(),
		ProcessedAt: ds.GeneratedAt.Format(time.RFC3339),
		Columns:     dto.Header(),
		Records:     ds.Records,
	})
}

// sendError sends a structured error response
func (h *ReportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
