package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InventoryHandler maneja cambios de stock, consultas del ledger, la proyección
// de inventario esperado y el log de transacciones (protegido).
type InventoryHandler struct {
	stockChange *inventory.StockChangeUseCase
	ledger      *inventory.LedgerUseCase
	sync        *inventory.SyncUseCase
	txUC        *usecase.TransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	stockChange *inventory.StockChangeUseCase,
	ledger *inventory.LedgerUseCase,
	sync *inventory.SyncUseCase,
	txUC *usecase.TransactionUseCase,
) *InventoryHandler {
	return &InventoryHandler{stockChange: stockChange, ledger: ledger, sync: sync, txUC: txUC}
}

// ReportStockChange ejecuta el flujo orquestado de cambio de stock.
func (h *InventoryHandler) ReportStockChange(c *fiber.Ctx) error {
	userEmail := GetEmail(c)
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.stockChange.Report(c.Context(), inventory.StockChangeInput{
		SKU:          in.SKU,
		ItemName:     in.ItemName,
		Location:     in.Location,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		BatchID:      in.BatchID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		PerformedBy:  userEmail,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidLocation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockChangeResponse{
		SKU:            result.SKU,
		Location:       result.Location,
		NewTotal:       result.NewTotal,
		TransactionIDs: result.TransactionIDs,
	})
}

// ListAllocations lista todos los documentos del ledger de asignaciones.
func (h *InventoryHandler) ListAllocations(c *fiber.Ctx) error {
	list, err := h.ledger.ListBatchAllocations(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAllocationResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "allocations": out})
}

// GetAllocation obtiene el documento del ledger para una ubicación y SKU.
func (h *InventoryHandler) GetAllocation(c *fiber.Ctx) error {
	location := c.Params("location")
	sku := c.Params("sku")
	alloc, err := h.ledger.GetBatchAllocation(c.Context(), sku, location)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if alloc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "asignación no encontrada"})
	}
	return c.JSON(toAllocationResponse(alloc))
}

// ListExpected lista la proyección de inventario esperado de una ubicación.
func (h *InventoryHandler) ListExpected(c *fiber.Ctx) error {
	location := c.Params("location")
	list, err := h.sync.ListExpectedByLocation(c.Context(), location)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ExpectedInventoryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ExpectedInventoryResponse{
			SKU: e.SKU, Location: e.Location, Amount: e.Amount, UpdatedAt: e.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "expected": out})
}

// GetExpected obtiene la proyección para una ubicación y SKU.
func (h *InventoryHandler) GetExpected(c *fiber.Ctx) error {
	location := c.Params("location")
	sku := c.Params("sku")
	entry, err := h.sync.GetExpected(c.Context(), sku, location)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(dto.ExpectedInventoryResponse{
		SKU: entry.SKU, Location: entry.Location, Amount: entry.Amount, UpdatedAt: entry.UpdatedAt,
	})
}

// ListTransactions lista el log de transacciones filtrando por sku o location.
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	sku := c.Query("sku")
	location := c.Query("location")
	if (sku == "") == (location == "") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere exactamente uno de sku o location"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var list []dto.TransactionResponse
	if sku != "" {
		list, err = h.txUC.ListBySKU(sku, from, to, page.Limit, page.Offset)
	} else {
		list, err = h.txUC.ListByLocation(location, from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// UpdateTransactionStatus transiciona una transacción PENDING a COMPLETED o CANCELLED.
func (h *InventoryHandler) UpdateTransactionStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateTransactionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.txUC.UpdateStatus(id, in.Status); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser COMPLETED o CANCELLED"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la transacción ya no está PENDING"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "status actualizado", "id": id, "status": in.Status})
}

func toAllocationResponse(a *entity.BatchAllocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		SKU:            a.SKU,
		Location:       a.Location,
		Allocations:    a.Allocations,
		TotalAllocated: a.TotalAllocated,
		UpdatedAt:      a.UpdatedAt,
	}
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
