package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat's well-known dev account #0.
const (
	devKey0  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestAddWithKeyDerivesAddress(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	require.NoError(t, mgr.AddWithKey("alice", devKey0))

	w, err := mgr.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, devAddr0, w.Address)
	assert.Equal(t, TypeSigning, w.Type)
	assert.NotEmpty(t, w.KeyRef)
}

func TestAddWithKeyRejectsGarbage(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	err := mgr.AddWithKey("bad", "zzzz")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestAddDuplicateName(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	require.NoError(t, mgr.Add("w", &Wallet{Name: "w", Address: "0x1", Type: TypeWatchOnly}))
	err := mgr.Add("w", &Wallet{Name: "w", Address: "0x2", Type: TypeWatchOnly})
	assert.ErrorIs(t, err, ErrWalletExists)
}

func TestGetByAddressIgnoresCaseAndPrefix(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	require.NoError(t, mgr.AddWithKey("alice", devKey0))

	// Lowercased and prefix-stripped forms must still resolve.
	w, err := mgr.GetByAddress("0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266")
	require.NoError(t, err)
	assert.Equal(t, "alice", w.Name)

	w, err = mgr.GetByAddress("f39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, "alice", w.Name)
}

func TestRemoveEvictsKey(t *testing.T) {
	ks := NewInMemoryKeystore()
	mgr := NewManager(WithInMemoryStore(), WithKeystore(ks))
	require.NoError(t, mgr.AddWithKey("alice", devKey0))

	w, _ := mgr.Get("alice")
	_, err := ks.Retrieve(w.KeyRef)
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("alice"))
	_, err = ks.Retrieve(w.KeyRef)
	assert.Error(t, err)
	_, err = mgr.Get("alice")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestSetDefaultExclusive(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	require.NoError(t, mgr.Add("a", &Wallet{Name: "a", Address: "0x1", Type: TypeWatchOnly}))
	require.NoError(t, mgr.Add("b", &Wallet{Name: "b", Address: "0x2", Type: TypeWatchOnly}))

	require.NoError(t, mgr.SetDefault("a"))
	require.NoError(t, mgr.SetDefault("b"))

	def := mgr.Default()
	require.NotNil(t, def)
	assert.Equal(t, "b", def.Name)

	a, _ := mgr.Get("a")
	assert.False(t, a.IsDefault)
}

func TestDefaultFallsBackToSingleWallet(t *testing.T) {
	mgr := NewManager(WithInMemoryStore())
	require.NoError(t, mgr.Add("only", &Wallet{Name: "only", Address: "0x1", Type: TypeWatchOnly}))

	def := mgr.Default()
	require.NotNil(t, def)
	assert.Equal(t, "only", def.Name)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	store := NewJSONStore(path)

	mgr := NewManager(WithStore(store), WithKeystore(NewInMemoryKeystore()))
	require.NoError(t, mgr.AddWithKey("alice", devKey0))
	require.NoError(t, mgr.SetDefault("alice"))

	// A fresh manager over the same file sees the persisted state.
	mgr2 := NewManager(WithStore(NewJSONStore(path)), WithKeystore(NewInMemoryKeystore()))
	w, err := mgr2.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, devAddr0, w.Address)
	assert.True(t, w.IsDefault)
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))
	wallets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
