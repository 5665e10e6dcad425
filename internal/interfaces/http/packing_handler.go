package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/packing"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// PackingHandler maneja escaneos de cajas e imports de packing list (protegido).
type PackingHandler struct {
	applyScan *packing.ApplyScanUseCase
	importUC  *packing.ImportUseCase
	boxRepo   repository.PackingBoxRepository
}

// NewPackingHandler construye el handler.
func NewPackingHandler(applyScan *packing.ApplyScanUseCase, importUC *packing.ImportUseCase, boxRepo repository.PackingBoxRepository) *PackingHandler {
	return &PackingHandler{applyScan: applyScan, importUC: importUC, boxRepo: boxRepo}
}

// Scan aplica un escaneo sobre una caja y devuelve la caja actualizada.
func (h *PackingHandler) Scan(c *fiber.Ctx) error {
	userEmail := GetEmail(c)
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	box, err := h.applyScan.ApplyScan(c.Context(), in.BatchID, in.CaseNo, in.SKU, in.Qty, userEmail, in.Source)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id, case_no, sku y qty > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toPackingBoxResponse(box))
}

// ListBoxes lista las cajas de un lote con su progreso.
func (h *PackingHandler) ListBoxes(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	boxes, err := h.boxRepo.ListByBatch(batchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PackingBoxResponse, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, toPackingBoxResponse(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "boxes": out})
}

// Import importa un packing list CSV legacy (cabecera CASE NO, PART NO, QTY).
func (h *PackingHandler) Import(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.importUC.ImportPackingListForBatch(c.Context(), batchID, in.CSV)
	return importResponse(c, result, err)
}

// ImportMapped importa un packing list CSV con mapeo de columnas explícito.
func (h *PackingHandler) ImportMapped(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	var in dto.ImportMappedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.importUC.ImportPackingListWithMapping(c.Context(), batchID, in.CSV, in.Mapping)
	return importResponse(c, result, err)
}

func importResponse(c *fiber.Ctx, result *dto.ImportResult, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		if errors.Is(err, domain.ErrBatchLocked) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_LOCKED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			if result != nil {
				return c.Status(fiber.StatusBadRequest).JSON(result)
			}
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "import inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

func toPackingBoxResponse(b *entity.PackingBox) dto.PackingBoxResponse {
	return dto.PackingBoxResponse{
		BatchID:       b.BatchID,
		CaseNo:        b.CaseNo,
		ExpectedBySKU: b.ExpectedBySKU,
		ScannedBySKU:  b.ScannedBySKU,
		ExpectedQty:   b.ExpectedQty,
		ScannedQty:    b.ScannedQty,
		Status:        b.Status,
		UpdatedAt:     b.UpdatedAt,
	}
}
