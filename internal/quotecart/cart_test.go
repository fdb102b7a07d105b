package quotecart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func catalogProduct(id int64, name string, price int64) Product {
	return Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
	}
}

func TestAddItemDistinctIDs(t *testing.T) {
	store := NewStore(NewMemoryPersistence(), nil)

	store.AddItem(catalogProduct(1, "Switch", 379))
	store.AddItem(catalogProduct(2, "Router", 520))
	store.AddItem(catalogProduct(3, "Firewall", 900))

	require.Equal(t, 3, store.TotalItems())
	require.Len(t, store.Items(), 3)
}

func TestAddItemSameIDIncrementsQuantity(t *testing.T) {
	store := NewStore(NewMemoryPersistence(), nil)

	stale := catalogProduct(1, "Switch", 379)
	store.AddItem(stale)

	// a later add with refreshed fields must not overwrite the stored line
	fresh := catalogProduct(1, "Switch v2", 425)
	store.AddItem(fresh)
	store.AddItem(fresh)

	items := store.Items()
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
	require.Equal(t, "Switch", items[0].Name)
	require.True(t, items[0].Price.Equal(decimal.NewFromInt(379)))
	require.Equal(t, 3, store.TotalItems())
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore(NewMemoryPersistence(), nil)
	store.AddItem(catalogProduct(1, "Switch", 379))

	store.UpdateQuantity(1, 3)
	require.Equal(t, 3, store.TotalItems())

	store.UpdateQuantity(1, 0)
	require.Empty(t, store.Items())

	store.AddItem(catalogProduct(1, "Switch", 379))
	store.UpdateQuantity(1, -5)
	require.Empty(t, store.Items())
}

func TestRemoveItemAbsentIsSilentNoOp(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(NewMemoryPersistence(), notifier)

	store.RemoveItem(99)
	require.Empty(t, notifier.messages)

	store.AddItem(catalogProduct(1, "Switch", 379))
	store.RemoveItem(1)
	require.Contains(t, notifier.messages[len(notifier.messages)-1], "Switch")
}

func TestTotalValue(t *testing.T) {
	store := NewStore(NewMemoryPersistence(), nil)
	store.AddItem(catalogProduct(1, "Switch", 379))
	store.UpdateQuantity(1, 2)
	store.AddItem(catalogProduct(2, "Router", 520))

	require.True(t, store.TotalValue().Equal(decimal.NewFromInt(379*2+520)))
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	persist := NewFilePersistence(path)

	store := NewStore(persist, nil)
	store.AddItem(catalogProduct(1, "Switch", 379))
	store.UpdateQuantity(1, 4)
	store.AddItem(Product{
		ID:             2,
		Name:           "Router",
		Price:          decimal.RequireFromString("520.50"),
		Specifications: map[string]string{"ports": "8"},
	})

	reloaded := NewStore(persist, nil)
	original := store.Items()
	restored := reloaded.Items()
	require.Len(t, restored, len(original))
	for i := range original {
		require.Equal(t, original[i].ID, restored[i].ID)
		require.Equal(t, original[i].Name, restored[i].Name)
		require.Equal(t, original[i].Quantity, restored[i].Quantity)
		require.Equal(t, original[i].Specifications, restored[i].Specifications)
		require.True(t, original[i].Price.Equal(restored[i].Price))
	}
	require.Equal(t, 5, reloaded.TotalItems())
}

func TestCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	persist := NewFilePersistence(path)
	require.NoError(t, persist.Save([]LineItem{{ID: 1, Name: "Switch", Quantity: 1}}))
	requireWrite(t, path, "{not json")

	store := NewStore(persist, nil)
	require.Empty(t, store.Items())
}

func TestMissingSnapshotYieldsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	store := NewStore(NewFilePersistence(path), nil)
	require.Empty(t, store.Items())
}

func requireWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestClear(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(NewMemoryPersistence(), notifier)
	store.AddItem(catalogProduct(1, "Switch", 379))

	store.Clear()
	require.Zero(t, store.TotalItems())
	require.Contains(t, notifier.messages[len(notifier.messages)-1], "cleared")
}
