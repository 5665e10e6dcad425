package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger() (*inventory.LedgerUseCase, *fakeAllocRepo) {
	repo := newFakeAllocRepo()
	return inventory.NewLedgerUseCase(&fakeTxRunner{repo: repo}, repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Add / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_AddCreaDocumentoYAcumula(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	alloc, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), alloc.Allocations["B-100"])
	assert.Equal(t, int64(50), alloc.TotalAllocated)

	alloc, err = uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-200", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(50), alloc.Allocations["B-100"], "el lote existente no cambia")
	assert.Equal(t, int64(25), alloc.Allocations["B-200"])
	assert.Equal(t, int64(75), alloc.TotalAllocated, "el total es la suma de los lotes")
}

func TestLedger_RemoveDecrementaYMantieneTotal(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	_, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 50)
	require.NoError(t, err)

	alloc, err := uc.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(30), alloc.Allocations["B-100"])
	assert.Equal(t, int64(30), alloc.TotalAllocated)
}

func TestLedger_RemoveHastaCeroEliminaLaClave(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	_, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 10)
	require.NoError(t, err)

	alloc, err := uc.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 10)
	require.NoError(t, err)
	_, exists := alloc.Allocations["B-100"]
	assert.False(t, exists, "una asignación en cero no debe quedar en el mapa")
	assert.Equal(t, int64(0), alloc.TotalAllocated)
}

// ──────────────────────────────────────────────────────────────────────────────
// No-negatividad
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_RemoveMasDeLoDisponible_FallaSinMutar(t *testing.T) {
	uc, repo := newLedger()
	ctx := context.Background()

	_, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 10)
	require.NoError(t, err)

	_, err = uc.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 11)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	persisted, err := repo.Get("SKU-1", "logistics")
	require.NoError(t, err)
	assert.Equal(t, int64(10), persisted.Allocations["B-100"], "el fallo no debe mutar el documento")
	assert.Equal(t, int64(10), persisted.TotalAllocated)
}

func TestLedger_RemoveDeOtroLote_NoTomaPrestado(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	// Hay 50 unidades del SKU en la ubicación, pero todas del lote B-100.
	_, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 50)
	require.NoError(t, err)

	_, err = uc.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "B-200", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"la disponibilidad se valida por lote, no por total")
}

func TestLedger_RemoveDeDocumentoInexistente_Falla(t *testing.T) {
	uc, _ := newLedger()

	_, err := uc.RemoveFromBatchAllocation(context.Background(), "SKU-X", "logistics", "B-100", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestLedger_RemoveSobreFilaReclamada_NoPersisteDocumento(t *testing.T) {
	uc, repo := newLedger()

	_, err := uc.RemoveFromBatchAllocation(context.Background(), "SKU-X", "logistics", "B-100", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	persisted, err := repo.Get("SKU-X", "logistics")
	require.NoError(t, err)
	assert.Nil(t, persisted, "la fila reclamada bajo bloqueo desaparece con el rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Primera escritura sobre una clave sin documento
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_PrimerasEscriturasSobreClaveNuevaAcumulan(t *testing.T) {
	uc, repo := newLedger()
	ctx := context.Background()

	// Cada add parte del documento reclamado y bloqueado, no de uno construido
	// desde cero: el segundo incremento ve el primero.
	_, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 6)
	require.NoError(t, err)
	alloc, err := uc.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 6)
	require.NoError(t, err)
	assert.Equal(t, int64(12), alloc.TotalAllocated)

	persisted, err := repo.Get("SKU-1", "logistics")
	require.NoError(t, err)
	assert.Equal(t, int64(12), persisted.Allocations["B-100"], "ningún incremento se pierde")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante: TotalAllocated == suma de Allocations
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_TotalSiempreIgualALaSuma(t *testing.T) {
	uc, repo := newLedger()
	ctx := context.Background()

	ops := []struct {
		batchID string
		add     bool
		qty     int64
	}{
		{"B-1", true, 10}, {"B-2", true, 7}, {"B-1", false, 3},
		{"B-3", true, 100}, {"B-2", false, 7}, {"B-1", true, 1},
	}
	for _, op := range ops {
		var err error
		if op.add {
			_, err = uc.AddToBatchAllocation(ctx, "SKU-1", "production_zone_1", op.batchID, op.qty)
		} else {
			_, err = uc.RemoveFromBatchAllocation(ctx, "SKU-1", "production_zone_1", op.batchID, op.qty)
		}
		require.NoError(t, err)

		persisted, err := repo.Get("SKU-1", "production_zone_1")
		require.NoError(t, err)
		var sum int64
		for _, q := range persisted.Allocations {
			sum += q
		}
		assert.Equal(t, sum, persisted.TotalAllocated)
	}
}

func TestLedger_EntradaInvalida(t *testing.T) {
	uc, _ := newLedger()
	ctx := context.Background()

	_, err := uc.AddToBatchAllocation(ctx, "", "logistics", "B-1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddToBatchAllocation(ctx, "SKU-1", "", "B-1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_GetDevuelveNilSiNoExiste(t *testing.T) {
	uc, _ := newLedger()

	alloc, err := uc.GetBatchAllocation(context.Background(), "SKU-1", "logistics")
	require.NoError(t, err)
	assert.Nil(t, alloc)
}

func TestLedger_LoteDefault(t *testing.T) {
	uc, _ := newLedger()

	alloc, err := uc.AddToBatchAllocation(context.Background(), "SKU-1", "logistics", entity.DefaultBatchID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), alloc.Allocations["DEFAULT"])
}
