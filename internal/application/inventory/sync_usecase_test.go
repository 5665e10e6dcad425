package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_SobreescribeConElTotalDelLedger(t *testing.T) {
	allocRepo := newFakeAllocRepo()
	expectedRepo := newFakeExpectedRepo()
	ledger := inventory.NewLedgerUseCase(&fakeTxRunner{repo: allocRepo}, allocRepo)
	sync := inventory.NewSyncUseCase(allocRepo, expectedRepo, testLogger())
	ctx := context.Background()

	_, err := ledger.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 50)
	require.NoError(t, err)
	_, err = ledger.RemoveFromBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 20)
	require.NoError(t, err)

	require.NoError(t, sync.SyncExpectedFromBatchAllocations(ctx, "SKU-1", "logistics", nil))

	entry, err := expectedRepo.Get("SKU-1", "logistics")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(30), entry.Amount, "la proyección debe reflejar el total del ledger")
}

func TestSync_ConTotalConocidoNoReleElLedger(t *testing.T) {
	allocRepo := newFakeAllocRepo()
	expectedRepo := newFakeExpectedRepo()
	sync := inventory.NewSyncUseCase(allocRepo, expectedRepo, testLogger())

	total := int64(42)
	require.NoError(t, sync.SyncExpectedFromBatchAllocations(context.Background(), "SKU-1", "logistics", &total))

	entry, err := expectedRepo.Get("SKU-1", "logistics")
	require.NoError(t, err)
	assert.Equal(t, int64(42), entry.Amount)
}

func TestSync_Idempotente(t *testing.T) {
	allocRepo := newFakeAllocRepo()
	expectedRepo := newFakeExpectedRepo()
	ledger := inventory.NewLedgerUseCase(&fakeTxRunner{repo: allocRepo}, allocRepo)
	sync := inventory.NewSyncUseCase(allocRepo, expectedRepo, testLogger())
	ctx := context.Background()

	_, err := ledger.AddToBatchAllocation(ctx, "SKU-1", "logistics", "B-100", 12)
	require.NoError(t, err)

	require.NoError(t, sync.SyncExpectedFromBatchAllocations(ctx, "SKU-1", "logistics", nil))
	first, err := expectedRepo.Get("SKU-1", "logistics")
	require.NoError(t, err)

	require.NoError(t, sync.SyncExpectedFromBatchAllocations(ctx, "SKU-1", "logistics", nil))
	second, err := expectedRepo.Get("SKU-1", "logistics")
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount, "dos syncs con el mismo ledger producen el mismo amount")
}

func TestSync_SinDocumentoEscribeCero(t *testing.T) {
	allocRepo := newFakeAllocRepo()
	expectedRepo := newFakeExpectedRepo()
	sync := inventory.NewSyncUseCase(allocRepo, expectedRepo, testLogger())

	require.NoError(t, sync.SyncExpectedFromBatchAllocations(context.Background(), "SKU-X", "logistics", nil))

	entry, err := expectedRepo.Get("SKU-X", "logistics")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(0), entry.Amount)
}

func TestSync_BestEffortNoPropagaElFallo(t *testing.T) {
	allocRepo := newFakeAllocRepo()
	expectedRepo := newFakeExpectedRepo()
	expectedRepo.fail = true
	sync := inventory.NewSyncUseCase(allocRepo, expectedRepo, testLogger())

	// No debe hacer panic ni propagar nada: solo loggea.
	sync.SyncBestEffort(context.Background(), "SKU-1", "logistics", nil)
}
