package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Bodega-api/internal/domain/packing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.PackingBoxRepository = (*PackingBoxRepo)(nil)

// PackingBoxRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los mapas por SKU se guardan como JSONB: un documento por (batch_id, case_no).
// Los eventos de escaneo van a una tabla append-only aparte (box_scans).
type PackingBoxRepo struct {
	q Querier
}

// NewPackingBoxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackingBoxRepository(q Querier) *PackingBoxRepo {
	return &PackingBoxRepo{q: q}
}

// Get obtiene una caja. Devuelve nil si no existe.
func (r *PackingBoxRepo) Get(batchID, caseNo string) (*entity.PackingBox, error) {
	return r.get(batchID, caseNo, false)
}

// GetForUpdate obtiene la caja y bloquea la fila para el read-modify-write del
// escaneo. Si la caja no existe la reclama primero: FOR UPDATE sobre cero filas
// no bloquea nada, y dos primeros escaneos concurrentes sobre una caja
// desconocida construirían el documento desde cero pisándose el incremento en
// el upsert. La fila reclamada desaparece con el rollback si la transacción no
// llega a commit.
func (r *PackingBoxRepo) GetForUpdate(batchID, caseNo string) (*entity.PackingBox, error) {
	box, err := r.get(batchID, caseNo, true)
	if err != nil || box != nil {
		return box, err
	}
	if err := r.claim(batchID, caseNo); err != nil {
		return nil, err
	}
	return r.get(batchID, caseNo, true)
}

func (r *PackingBoxRepo) claim(batchID, caseNo string) error {
	query := `
		INSERT INTO packing_boxes (batch_id, case_no, expected_by_sku, scanned_by_sku, expected_qty, scanned_qty, status, created_at, updated_at)
		VALUES ($1, $2, '{}'::jsonb, '{}'::jsonb, 0, 0, $3, now(), now())
		ON CONFLICT (batch_id, case_no) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, batchID, caseNo, domainpacking.StatusNotStarted); err != nil {
		return fmt.Errorf("claim packing box: %w", err)
	}
	return nil
}

func (r *PackingBoxRepo) get(batchID, caseNo string, forUpdate bool) (*entity.PackingBox, error) {
	query := `
		SELECT batch_id, case_no, expected_by_sku, scanned_by_sku, expected_qty, scanned_qty, status, created_at, updated_at
		FROM packing_boxes WHERE batch_id = $1 AND case_no = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	row := r.q.QueryRow(context.Background(), query, batchID, caseNo)
	box, err := scanPackingBox(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packing box: %w", err)
	}
	return box, nil
}

// Upsert inserta o sobreescribe el documento completo de la caja.
func (r *PackingBoxRepo) Upsert(box *entity.PackingBox) error {
	expected, err := json.Marshal(box.ExpectedBySKU)
	if err != nil {
		return fmt.Errorf("encode expected_by_sku: %w", err)
	}
	scanned, err := json.Marshal(box.ScannedBySKU)
	if err != nil {
		return fmt.Errorf("encode scanned_by_sku: %w", err)
	}
	query := `
		INSERT INTO packing_boxes (batch_id, case_no, expected_by_sku, scanned_by_sku, expected_qty, scanned_qty, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (batch_id, case_no)
		DO UPDATE SET expected_by_sku = EXCLUDED.expected_by_sku,
		              scanned_by_sku = EXCLUDED.scanned_by_sku,
		              expected_qty = EXCLUDED.expected_qty,
		              scanned_qty = EXCLUDED.scanned_qty,
		              status = EXCLUDED.status,
		              updated_at = now()`
	_, err = r.q.Exec(context.Background(), query,
		box.BatchID, box.CaseNo, expected, scanned,
		box.ExpectedQty, box.ScannedQty, box.Status, box.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert packing box: %w", err)
	}
	return nil
}

// ListByBatch lista las cajas de un lote ordenadas por número de caja.
func (r *PackingBoxRepo) ListByBatch(batchID string) ([]*entity.PackingBox, error) {
	query := `
		SELECT batch_id, case_no, expected_by_sku, scanned_by_sku, expected_qty, scanned_qty, status, created_at, updated_at
		FROM packing_boxes WHERE batch_id = $1 ORDER BY case_no`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list packing boxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackingBox
	for rows.Next() {
		box, err := scanPackingBox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan packing box: %w", err)
		}
		list = append(list, box)
	}
	return list, rows.Err()
}

// DeleteByBatch borra todas las cajas del lote (reemplazo por import).
// Los eventos en box_scans se conservan como rastro histórico.
func (r *PackingBoxRepo) DeleteByBatch(batchID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM packing_boxes WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete packing boxes: %w", err)
	}
	return nil
}

// AppendScan agrega un evento de escaneo (append-only).
func (r *PackingBoxRepo) AppendScan(event *entity.ScanEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO box_scans (id, batch_id, case_no, sku, qty, user_email, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.BatchID, event.CaseNo, event.SKU,
		event.Qty, event.UserEmail, event.Source, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append box scan: %w", err)
	}
	return nil
}

func scanPackingBox(row pgxScanner) (*entity.PackingBox, error) {
	var b entity.PackingBox
	var expected, scanned []byte
	err := row.Scan(&b.BatchID, &b.CaseNo, &expected, &scanned,
		&b.ExpectedQty, &b.ScannedQty, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(expected, &b.ExpectedBySKU); err != nil {
		return nil, fmt.Errorf("decode expected_by_sku: %w", err)
	}
	if err := json.Unmarshal(scanned, &b.ScannedBySKU); err != nil {
		return nil, fmt.Errorf("decode scanned_by_sku: %w", err)
	}
	if b.ExpectedBySKU == nil {
		b.ExpectedBySKU = make(map[string]int64)
	}
	if b.ScannedBySKU == nil {
		b.ScannedBySKU = make(map[string]int64)
	}
	return &b, nil
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar scanPackingBox.
type pgxScanner interface {
	Scan(dest ...any) error
}
