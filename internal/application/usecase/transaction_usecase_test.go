package usecase_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxRepo log de transacciones en memoria con la misma semántica condicional
// de UpdateStatus que la implementación real (solo muta si está PENDING).
type fakeTxRepo struct {
	txs map[string]*entity.StockTransaction
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: make(map[string]*entity.StockTransaction)}
}

func (r *fakeTxRepo) Create(tx *entity.StockTransaction) error {
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *fakeTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTxRepo) ListBySKU(sku string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.txs {
		if tx.SKU == sku {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) ListByLocation(location string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.txs {
		if tx.Location == location {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) UpdateStatus(id, newStatus string) (bool, error) {
	tx, ok := r.txs[id]
	if !ok || tx.Status != entity.TxStatusPending {
		return false, nil
	}
	tx.Status = newStatus
	return true, nil
}

var _ repository.TransactionRepository = (*fakeTxRepo)(nil)

func seedTx(t *testing.T, repo *fakeTxRepo, id, status string) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.StockTransaction{
		ID: id, SKU: "SKU-1", Location: "logistics",
		Type: entity.TxTypeAdjustment, Status: status, CreatedAt: time.Now(),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de aprobación PENDING -> COMPLETED | CANCELLED
// ──────────────────────────────────────────────────────────────────────────────

func TestTransaction_AprobarPendiente(t *testing.T) {
	repo := newFakeTxRepo()
	uc := usecase.NewTransactionUseCase(repo)
	seedTx(t, repo, "tx-1", entity.TxStatusPending)

	require.NoError(t, uc.UpdateStatus("tx-1", entity.TxStatusCompleted))

	tx, err := repo.GetByID("tx-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TxStatusCompleted, tx.Status)
}

func TestTransaction_CancelarPendiente(t *testing.T) {
	repo := newFakeTxRepo()
	uc := usecase.NewTransactionUseCase(repo)
	seedTx(t, repo, "tx-1", entity.TxStatusPending)

	require.NoError(t, uc.UpdateStatus("tx-1", entity.TxStatusCancelled))
}

func TestTransaction_StatusDestinoInvalido(t *testing.T) {
	repo := newFakeTxRepo()
	uc := usecase.NewTransactionUseCase(repo)
	seedTx(t, repo, "tx-1", entity.TxStatusPending)

	err := uc.UpdateStatus("tx-1", entity.TxStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.UpdateStatus("tx-1", "APPROVED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransaction_YaNoEstaPendiente(t *testing.T) {
	repo := newFakeTxRepo()
	uc := usecase.NewTransactionUseCase(repo)
	seedTx(t, repo, "tx-1", entity.TxStatusCompleted)

	err := uc.UpdateStatus("tx-1", entity.TxStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict, "una transacción terminal es inmutable")
}

func TestTransaction_NoExiste(t *testing.T) {
	uc := usecase.NewTransactionUseCase(newFakeTxRepo())

	err := uc.UpdateStatus("tx-404", entity.TxStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransaction_ListBySKU(t *testing.T) {
	repo := newFakeTxRepo()
	uc := usecase.NewTransactionUseCase(repo)
	seedTx(t, repo, "tx-1", entity.TxStatusCompleted)
	seedTx(t, repo, "tx-2", entity.TxStatusCompleted)

	list, err := uc.ListBySKU("SKU-1", nil, nil, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
