package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/notify"
)

func newTestStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	store := NewStore(kv, notify.NewNotifier(), zap.NewNop())
	store.WithClock(func() int64 { return 42 })
	return store, kv
}

func TestRead_EmptyWhenMissing(t *testing.T) {
	store, _ := newTestStore(t)
	items := store.Read(context.Background(), "c1")
	assert.Empty(t, items)
}

func TestRead_DiscardsCorruptState(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart:c1", `{"not":"an array"`))

	items := store.Read(ctx, "c1")
	assert.Empty(t, items)

	// The corrupt key must be erased, not left around.
	_, err := kv.Get(ctx, "cart:c1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRead_NonArrayDiscardedWholesale(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart:c1", `{"items": []}`))
	assert.Empty(t, store.Read(ctx, "c1"))
}

func TestRead_CoercesLooseFields(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	// Numeric product id, fractional quantity, missing added_at, and the
	// legacy "id" key all appear in carts persisted by old clients.
	payload := `[
		{"product_id": 201, "quantity": 2.9},
		{"id": "p2", "quantity": 0},
		{"product_id": "p3", "quantity": "lots", "added_at": "never"},
		{"product_id": "p4", "variant_id": "", "quantity": 1, "added_at": 7}
	]`
	require.NoError(t, kv.Set(ctx, "cart:c1", payload))

	items := store.Read(ctx, "c1")
	require.Len(t, items, 4)

	assert.Equal(t, "201", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(42), items[0].AddedAt)

	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, 1, items[2].Quantity)
	assert.Equal(t, int64(42), items[2].AddedAt)

	assert.Equal(t, "", items[3].VariantID)
	assert.Equal(t, int64(7), items[3].AddedAt)
}

func TestRead_DropsItemsWithoutProductID(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	payload := `[{"quantity": 3}, {"product_id": "p1", "quantity": 1}]`
	require.NoError(t, kv.Set(ctx, "cart:c1", payload))

	items := store.Read(ctx, "c1")
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestRead_MergesDuplicateIdentities(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	payload := `[
		{"product_id": "p1", "quantity": 2, "added_at": 10},
		{"product_id": "p1", "quantity": 3, "added_at": 5},
		{"product_id": "p1", "variant_id": "v1", "quantity": 1, "added_at": 8}
	]`
	require.NoError(t, kv.Set(ctx, "cart:c1", payload))

	items := store.Read(ctx, "c1")
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(5), items[0].AddedAt)
	assert.Equal(t, "v1", items[1].VariantID)
}

func TestWrite_RereadMatchesWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	written := store.Write(ctx, "c1", []domain.LineItem{
		{ProductID: "p1", Quantity: 2, AddedAt: 10},
		{ProductID: "p2", VariantID: "v1", Quantity: 0, AddedAt: 11},
	})
	read := store.Read(ctx, "c1")

	assert.Equal(t, written, read)
}

func TestWrite_IsIdempotentOnNormalizedState(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	store.Write(ctx, "c1", []domain.LineItem{
		{ProductID: "p1", Quantity: 2, AddedAt: 10},
	})
	first, err := kv.Get(ctx, "cart:c1")
	require.NoError(t, err)

	// Load and re-persist without mutation: byte-for-byte equivalent.
	store.Write(ctx, "c1", store.Read(ctx, "c1"))
	second, err := kv.Get(ctx, "cart:c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteRaw_NonArrayCoercesToEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Write(ctx, "c1", []domain.LineItem{{ProductID: "p1", Quantity: 1}})

	items := store.WriteRaw(ctx, "c1", []byte(`"garbage"`))
	assert.Empty(t, items)
	assert.Empty(t, store.Read(ctx, "c1"))
}

func TestWriteRaw_AcceptsClientSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	items := store.WriteRaw(ctx, "c1", []byte(`[{"id": 201, "quantity": 2}, {"id": 201, "quantity": 1}]`))
	require.Len(t, items, 1)
	assert.Equal(t, "201", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestErase_DeletesAndAnnouncesEmpty(t *testing.T) {
	kv := NewMemoryKV()
	notifier := notify.NewNotifier()
	store := NewStore(kv, notifier, zap.NewNop())
	ctx := context.Background()

	var got []domain.LineItem
	fired := false
	notifier.Subscribe(func(cartID string, items []domain.LineItem) {
		fired = true
		got = items
	})

	store.Write(ctx, "c1", []domain.LineItem{{ProductID: "p1", Quantity: 1}})
	store.Erase(ctx, "c1")

	require.True(t, fired)
	assert.Empty(t, got)
	_, err := kv.Get(ctx, "cart:c1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
