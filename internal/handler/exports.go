package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
)

// ExportManager is the export service as seen by the handlers
type ExportManager interface {
	Request(ctx context.Context, dataset domain.ExportDataset) (*domain.ExportJob, error)
	List(ctx context.Context, dataset string) ([]domain.ExportFile, error)
}

// ExportHandler handles CSV exports
type ExportHandler struct {
	exports ExportManager
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports ExportManager) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Request handles POST /api/exports
func (h *ExportHandler) Request(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.exports.Request(c.UserContext(), req.Dataset)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(job)
}

// List handles GET /api/exports?dataset=
func (h *ExportHandler) List(c *fiber.Ctx) error {
	files, err := h.exports.List(c.UserContext(), c.Query("dataset"))
	if err != nil {
		return err
	}
	return c.JSON(files)
}
