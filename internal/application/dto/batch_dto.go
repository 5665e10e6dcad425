package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchItemDTO línea del listado de un lote.
type BatchItemDTO struct {
	SKU  string `json:"sku"`
	Name string `json:"name,omitempty"`
	Qty  int64  `json:"qty"`
}

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	Name      string         `json:"name"`
	Items     []BatchItemDTO `json:"items,omitempty"`
	CarVins   []string       `json:"car_vins,omitempty"`
	CarType   string         `json:"car_type,omitempty"`
	TotalCars int            `json:"total_cars,omitempty"`
}

// BatchResponse vista de un lote de producción.
type BatchResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Items     []BatchItemDTO `json:"items,omitempty"`
	CarVins   []string       `json:"car_vins,omitempty"`
	CarType   string         `json:"car_type,omitempty"`
	TotalCars int            `json:"total_cars,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BoxReportDTO progreso de empaque de una caja.
type BoxReportDTO struct {
	CaseNo        string          `json:"case_no"`
	ExpectedQty   int64           `json:"expected_qty"`
	ScannedQty    int64           `json:"scanned_qty"`
	Status        string          `json:"status"`
	CompletionPct decimal.Decimal `json:"completion_pct"` // 0 si la caja no tiene expectativa
	Discrepancy   int64           `json:"discrepancy"`    // scanned - expected
}

// BatchPackingReportDTO resumen de empaque de un lote para dashboards.
type BatchPackingReportDTO struct {
	BatchID        string          `json:"batch_id"`
	BatchName      string          `json:"batch_name"`
	Boxes          []BoxReportDTO  `json:"boxes"`
	TotalExpected  int64           `json:"total_expected"`
	TotalScanned   int64           `json:"total_scanned"`
	CompletionPct  decimal.Decimal `json:"completion_pct"`
	DiscrepancyPct decimal.Decimal `json:"discrepancy_pct"`
	CountsByStatus map[string]int  `json:"counts_by_status"`
}
