package analytics

import (
	"sort"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BatchReportUseCase arma el reporte de progreso de empaque de un lote:
// porcentaje de avance por caja y agregado, discrepancias y conteo por estado.
type BatchReportUseCase struct {
	batchRepo repository.BatchRepository
	boxRepo   repository.PackingBoxRepository
}

// NewBatchReportUseCase construye el caso de uso de reportes.
func NewBatchReportUseCase(batchRepo repository.BatchRepository, boxRepo repository.PackingBoxRepository) *BatchReportUseCase {
	return &BatchReportUseCase{batchRepo: batchRepo, boxRepo: boxRepo}
}

// PackingReport calcula el reporte de empaque del lote indicado.
func (uc *BatchReportUseCase) PackingReport(batchID string) (*dto.BatchPackingReportDTO, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	boxes, err := uc.boxRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}

	report := &dto.BatchPackingReportDTO{
		BatchID:        batch.ID,
		BatchName:      batch.Name,
		Boxes:          make([]dto.BoxReportDTO, 0, len(boxes)),
		CountsByStatus: make(map[string]int),
	}
	for _, box := range boxes {
		report.TotalExpected += box.ExpectedQty
		report.TotalScanned += box.ScannedQty
		report.CountsByStatus[box.Status]++
		report.Boxes = append(report.Boxes, dto.BoxReportDTO{
			CaseNo:        box.CaseNo,
			ExpectedQty:   box.ExpectedQty,
			ScannedQty:    box.ScannedQty,
			Status:        box.Status,
			CompletionPct: completionPct(box.ExpectedQty, box.ScannedQty),
			Discrepancy:   box.ScannedQty - box.ExpectedQty,
		})
	}
	sort.Slice(report.Boxes, func(i, j int) bool {
		return report.Boxes[i].CaseNo < report.Boxes[j].CaseNo
	})

	report.CompletionPct = completionPct(report.TotalExpected, report.TotalScanned)
	report.DiscrepancyPct = discrepancyPct(report.TotalExpected, report.TotalScanned)
	return report, nil
}

// completionPct = scanned/expected*100 con 2 decimales; 0 si no hay expectativa.
func completionPct(expected, scanned int64) decimal.Decimal {
	if expected == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(scanned).
		Mul(hundred).
		Div(decimal.NewFromInt(expected)).
		Round(2)
}

// discrepancyPct = (scanned-expected)/expected*100 con 2 decimales; 0 si no hay
// expectativa. Positivo indica sobre-escaneo.
func discrepancyPct(expected, scanned int64) decimal.Decimal {
	if expected == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(scanned - expected).
		Mul(hundred).
		Div(decimal.NewFromInt(expected)).
		Round(2)
}
