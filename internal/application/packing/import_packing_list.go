package packing

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Bodega-api/internal/domain/packing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
	"golang.org/x/text/unicode/norm"
)

// headerScanRows cuántas filas iniciales se inspeccionan buscando la cabecera
// en el import con mapeo de columnas.
const headerScanRows = 5

// ImportUseCase importa packing lists CSV para un lote: agrupa filas por caja
// sumando cantidades por SKU y REEMPLAZA todas las cajas existentes del lote
// (delete + create, operación bulk no transaccional). El parseo es tolerante por
// fila: una fila malformada se descarta y se reporta individualmente en lugar de
// abortar el import completo.
type ImportUseCase struct {
	batchRepo repository.BatchRepository
	boxRepo   repository.PackingBoxRepository
	log       *logger.Logger
}

// NewImportUseCase construye el caso de uso de import.
func NewImportUseCase(batchRepo repository.BatchRepository, boxRepo repository.PackingBoxRepository, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{batchRepo: batchRepo, boxRepo: boxRepo, log: log}
}

// ImportPackingListForBatch variante legacy: la primera fila es la cabecera y
// debe contener CASE NO, PART NO y QTY (case-insensitive).
func (uc *ImportUseCase) ImportPackingListForBatch(ctx context.Context, batchID, csvData string) (*dto.ImportResult, error) {
	if err := uc.checkBatchUnlocked(batchID); err != nil {
		return lockedResult(err), err
	}
	records, err := readCSV(csvData)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return &dto.ImportResult{Errors: []string{"CSV vacío"}}, domain.ErrInvalidInput
	}

	caseIdx, partIdx, qtyIdx, ok := locateColumns(records[0])
	if !ok {
		return &dto.ImportResult{
			Errors: []string{"cabecera inválida: se requieren las columnas CASE NO, PART NO y QTY"},
		}, domain.ErrInvalidInput
	}
	groups, result := collectRows(records[1:], caseIdx, partIdx, qtyIdx)
	if err := uc.replaceBoxes(batchID, groups, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ImportPackingListWithMapping variante con mapeo explícito de columnas: el
// usuario suministra los índices y la cabecera se auto-detecta escaneando las
// primeras filas en busca de las palabras clave case/part/qty.
func (uc *ImportUseCase) ImportPackingListWithMapping(ctx context.Context, batchID, csvData string, mapping dto.ColumnMapping) (*dto.ImportResult, error) {
	if mapping.CaseNoIndex < 0 || mapping.PartNoIndex < 0 || mapping.QtyIndex < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkBatchUnlocked(batchID); err != nil {
		return lockedResult(err), err
	}
	records, err := readCSV(csvData)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return &dto.ImportResult{Errors: []string{"CSV vacío"}}, domain.ErrInvalidInput
	}

	start := detectHeaderRow(records)
	groups, result := collectRows(records[start:], mapping.CaseNoIndex, mapping.PartNoIndex, mapping.QtyIndex)
	if err := uc.replaceBoxes(batchID, groups, result); err != nil {
		return nil, err
	}
	return result, nil
}

// checkBatchUnlocked verifica que el lote exista y no esté activado.
// Un lote in_progress tiene su packing list bloqueado: cero mutación.
func (uc *ImportUseCase) checkBatchUnlocked(batchID string) error {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	if batch.Activated() {
		return domain.ErrBatchLocked
	}
	return nil
}

// replaceBoxes borra todas las cajas del lote y crea las nuevas a partir de las
// filas válidas agrupadas por caja.
func (uc *ImportUseCase) replaceBoxes(batchID string, groups map[string]map[string]int64, result *dto.ImportResult) error {
	if err := uc.boxRepo.DeleteByBatch(batchID); err != nil {
		return fmt.Errorf("reemplazar cajas del lote %s: %w", batchID, err)
	}
	now := time.Now()
	caseNos := make([]string, 0, len(groups))
	for caseNo := range groups {
		caseNos = append(caseNos, caseNo)
	}
	sort.Strings(caseNos)
	for _, caseNo := range caseNos {
		box := entity.NewPackingBox(batchID, caseNo)
		box.ExpectedBySKU = groups[caseNo]
		box.ExpectedQty = domainpacking.SumQuantities(box.ExpectedBySKU)
		box.Status = domainpacking.StatusNotStarted
		box.CreatedAt = now
		box.UpdatedAt = now
		if err := uc.boxRepo.Upsert(box); err != nil {
			return fmt.Errorf("crear caja %s del lote %s: %w", caseNo, batchID, err)
		}
	}
	result.Boxes = len(caseNos)
	uc.log.Info().
		Str("batch_id", batchID).
		Int("boxes", result.Boxes).
		Int("total_rows", result.TotalRows).
		Int("skipped_rows", result.SkippedRows).
		Msg("packing list importado")
	return nil
}

// collectRows valida y agrupa las filas de datos: caja -> SKU -> cantidad
// acumulada. Las filas inválidas se descartan con detalle individual; la
// numeración de fila es 1-based sobre las filas de datos (cabecera excluida).
func collectRows(rows [][]string, caseIdx, partIdx, qtyIdx int) (map[string]map[string]int64, *dto.ImportResult) {
	maxIdx := caseIdx
	if partIdx > maxIdx {
		maxIdx = partIdx
	}
	if qtyIdx > maxIdx {
		maxIdx = qtyIdx
	}

	groups := make(map[string]map[string]int64)
	result := &dto.ImportResult{TotalRows: len(rows), Errors: []string{}}

	for i, rec := range rows {
		rowNumber := i + 1
		if len(rec) <= maxIdx {
			skip(result, rowNumber, rec, "fila incompleta: faltan columnas", nil)
			continue
		}
		caseNo := normalizeToken(rec[caseIdx])
		partNo := normalizeToken(rec[partIdx])
		rawQty := strings.TrimSpace(rec[qtyIdx])
		extracted := map[string]string{"caseNo": caseNo, "partNo": partNo, "qty": rawQty}

		if caseNo == "" {
			skip(result, rowNumber, rec, "CASE NO vacío", extracted)
			continue
		}
		if partNo == "" {
			skip(result, rowNumber, rec, "PART NO vacío", extracted)
			continue
		}
		qty, err := strconv.ParseInt(normalizeToken(rawQty), 10, 64)
		if err != nil || qty <= 0 {
			skip(result, rowNumber, rec, fmt.Sprintf("QTY inválido: %q (se requiere entero positivo)", rawQty), extracted)
			continue
		}

		if groups[caseNo] == nil {
			groups[caseNo] = make(map[string]int64)
		}
		groups[caseNo][partNo] += qty
	}
	return groups, result
}

func skip(result *dto.ImportResult, rowNumber int, rec []string, reason string, extracted map[string]string) {
	result.SkippedRows++
	result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %s", rowNumber, reason))
	result.SkippedDetails = append(result.SkippedDetails, dto.SkippedRowDetail{
		RowNumber:       rowNumber,
		RowData:         strings.Join(rec, ","),
		Reason:          reason,
		ExtractedValues: extracted,
	})
}

func lockedResult(err error) *dto.ImportResult {
	return &dto.ImportResult{Errors: []string{err.Error()}}
}

func readCSV(data string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// locateColumns busca CASE/PART/QTY en la fila de cabecera (case-insensitive).
func locateColumns(header []string) (caseIdx, partIdx, qtyIdx int, ok bool) {
	caseIdx, partIdx, qtyIdx = -1, -1, -1
	for i, cell := range header {
		c := normalizeToken(cell)
		switch {
		case caseIdx < 0 && strings.Contains(c, "CASE"):
			caseIdx = i
		case partIdx < 0 && strings.Contains(c, "PART"):
			partIdx = i
		case qtyIdx < 0 && strings.Contains(c, "QTY"):
			qtyIdx = i
		}
	}
	return caseIdx, partIdx, qtyIdx, caseIdx >= 0 && partIdx >= 0 && qtyIdx >= 0
}

// detectHeaderRow devuelve el índice de la primera fila de datos: escanea las
// primeras filas buscando una que parezca cabecera (contiene case/part/qty).
// Si ninguna lo parece, todas las filas se tratan como datos.
func detectHeaderRow(records [][]string) int {
	limit := headerScanRows
	if len(records) < limit {
		limit = len(records)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range records[i] {
			c := normalizeToken(cell)
			if strings.Contains(c, "CASE") || strings.Contains(c, "PART") || strings.Contains(c, "QTY") {
				return i + 1
			}
		}
	}
	return 0
}

// normalizeToken normaliza un token del CSV: NFKC (dígitos/letras fullwidth de
// listas de proveedores asiáticos), trim y mayúsculas.
func normalizeToken(s string) string {
	return strings.ToUpper(strings.TrimSpace(norm.NFKC.String(s)))
}
