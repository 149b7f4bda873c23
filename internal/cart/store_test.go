package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
	"github.com/S41T4M4/fc-front/internal/storage"
)

type fakeCoin struct {
	coins    int64
	price    float64
	platform string
}

var fakeCatalog = map[int64]fakeCoin{
	1: {coins: 100000, price: 49.90, platform: "PC"},
	9: {coins: 50000, price: 25.00, platform: "PC"},
}

// fakeCartBackend is a counting in-memory stand-in for the cart endpoints.
type fakeCartBackend struct {
	mu             sync.Mutex
	getByUserCalls int
	createCalls    int
	getCalls       int
	addCalls       int
	removeCalls    int
	updateCalls    int

	hasCart  bool
	cartID   int64
	nextItem int64
	items    []api.CartItemDTO

	absentAsFalsySuccess  bool
	absentAsMissingFields bool // success:true but no cart id / items field
	failGetByUser         bool
	failGet               bool
	failCreate            bool
	releaseGetByUser      chan struct{} // when set, get-by-user blocks until closed
}

func newFakeCartBackend() *fakeCartBackend {
	return &fakeCartBackend{cartID: 77, nextItem: 1}
}

func (f *fakeCartBackend) handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/Carrinho/usuario/{userID}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		f.getByUserCalls++
		release := f.releaseGetByUser
		f.mu.Unlock()
		if release != nil {
			<-release
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failGetByUser {
			http.Error(w, "backend exploded", http.StatusInternalServerError)
			return
		}
		if !f.hasCart {
			if f.absentAsFalsySuccess {
				json.NewEncoder(w).Encode(api.CartResponse{Success: false, Message: "no cart"})
				return
			}
			if f.absentAsMissingFields {
				json.NewEncoder(w).Encode(api.CartResponse{Success: true})
				return
			}
			http.Error(w, "user has no cart", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(api.CartResponse{Success: true, CartID: f.cartID, Items: f.items})
	})

	r.Post("/Carrinho/criar", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.createCalls++
		if f.failCreate {
			http.Error(w, "backend exploded", http.StatusInternalServerError)
			return
		}
		f.hasCart = true
		json.NewEncoder(w).Encode(api.CreateCartResponse{Success: true, CartID: f.cartID})
	})

	r.Get("/Carrinho/{cartID}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.getCalls++
		if f.failGet {
			http.Error(w, "backend exploded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(api.CartResponse{Success: true, CartID: f.cartID, Items: f.items})
	})

	r.Post("/Carrinho/adicionar-item", func(w http.ResponseWriter, req *http.Request) {
		var body api.AddItemRequest
		json.NewDecoder(req.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.addCalls++
		coin := fakeCatalog[body.IDMoeda]
		for i := range f.items {
			if f.items[i].IDMoeda == body.IDMoeda {
				f.items[i].Quantidade += body.Quantidade
				json.NewEncoder(w).Encode(api.MutationResponse{Success: true})
				return
			}
		}
		f.items = append(f.items, api.CartItemDTO{
			IDItem:     f.nextItem,
			IDCarrinho: f.cartID,
			IDMoeda:    body.IDMoeda,
			Quantidade: body.Quantidade,
			Moeda: api.CoinDTO{
				IDMoeda:    body.IDMoeda,
				Quantidade: coin.coins,
				Valor:      coin.price,
				Plataforma: coin.platform,
			},
		})
		f.nextItem++
		json.NewEncoder(w).Encode(api.MutationResponse{Success: true})
	})

	r.Delete("/Carrinho/remover-item/{itemID}", func(w http.ResponseWriter, req *http.Request) {
		itemID, _ := strconv.ParseInt(chi.URLParam(req, "itemID"), 10, 64)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.removeCalls++
		for i := range f.items {
			if f.items[i].IDItem == itemID {
				f.items = append(f.items[:i], f.items[i+1:]...)
				json.NewEncoder(w).Encode(api.MutationResponse{Success: true})
				return
			}
		}
		http.Error(w, "item not found", http.StatusNotFound)
	})

	r.Put("/Carrinho/atualizar-item/{itemID}", func(w http.ResponseWriter, req *http.Request) {
		itemID, _ := strconv.ParseInt(chi.URLParam(req, "itemID"), 10, 64)
		var body api.UpdateQuantityRequest
		json.NewDecoder(req.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.updateCalls++
		for i := range f.items {
			if f.items[i].IDItem == itemID {
				f.items[i].Quantidade = body.Quantidade
				json.NewEncoder(w).Encode(api.MutationResponse{Success: true})
				return
			}
		}
		http.Error(w, "item not found", http.StatusNotFound)
	})

	return r
}

func (f *fakeCartBackend) seedItem(coinID int64, qty int) {
	coin := fakeCatalog[coinID]
	f.items = append(f.items, api.CartItemDTO{
		IDItem:     f.nextItem,
		IDCarrinho: f.cartID,
		IDMoeda:    coinID,
		Quantidade: qty,
		Moeda: api.CoinDTO{
			IDMoeda:    coinID,
			Quantidade: coin.coins,
			Valor:      coin.price,
			Plataforma: coin.platform,
		},
	})
	f.nextItem++
	f.hasCart = true
}

func newTestStore(t *testing.T, backend *fakeCartBackend) (*Store, *api.Client, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL)
	st := storage.NewMemoryStore()
	return New(client, st), client, st
}

func TestLoadExistingCart(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(9, 2) // 50.000 coins at 25.00
	store, _, _ := newTestStore(t, backend)

	require.NoError(t, store.Load(context.Background(), 1))

	assert.Equal(t, StateLoaded, store.State())
	assert.Equal(t, int64(77), store.CartID())
	require.Len(t, store.Items(), 1)
	item := store.Items()[0]
	assert.Equal(t, "50.000 Coins", item.Name)
	assert.Equal(t, "50.000", item.Amount)
	assert.Equal(t, "PC", item.Platform)
	assert.Equal(t, 2, store.ItemCount())
	assert.InDelta(t, 50.00, store.Total(), 0.001)
	assert.Zero(t, backend.createCalls)
}

func TestLoadAbsence404CreatesCart(t *testing.T) {
	backend := newFakeCartBackend()
	store, _, _ := newTestStore(t, backend)

	require.NoError(t, store.Load(context.Background(), 1))

	assert.Equal(t, 1, backend.getByUserCalls)
	assert.Equal(t, 1, backend.createCalls)
	assert.Equal(t, StateLoaded, store.State())
	assert.Equal(t, int64(77), store.CartID())
	assert.Empty(t, store.Items())
}

func TestLoadAbsenceFalsySuccessCreatesCart(t *testing.T) {
	backend := newFakeCartBackend()
	backend.absentAsFalsySuccess = true
	store, _, _ := newTestStore(t, backend)

	require.NoError(t, store.Load(context.Background(), 1))

	assert.Equal(t, 1, backend.createCalls)
	assert.Equal(t, StateLoaded, store.State())
}

func TestLoadAbsenceMissingFieldsCreatesCart(t *testing.T) {
	backend := newFakeCartBackend()
	backend.absentAsMissingFields = true
	store, _, _ := newTestStore(t, backend)

	// A bare {"success":true} reply carries neither a cart id nor an items
	// field; that is an absence signal, not an existing cart.
	require.NoError(t, store.Load(context.Background(), 1))

	assert.Equal(t, 1, backend.createCalls)
	assert.Equal(t, StateLoaded, store.State())
	assert.Equal(t, int64(77), store.CartID())
}

func TestFailedCreateKeepsLoadedState(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	store, _, _ := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))

	// The backend forgets the cart and refuses to make a new one.
	backend.mu.Lock()
	backend.hasCart = false
	backend.items = nil
	backend.failCreate = true
	backend.mu.Unlock()

	err := store.Load(context.Background(), 1)
	require.Error(t, err)

	assert.Equal(t, StateLoaded, store.State(), "an already loaded store keeps its state")
	require.Len(t, store.Items(), 1, "prior items retained")
	assert.Error(t, store.LastError())
}

func TestLoadHardFailureDoesNotCreate(t *testing.T) {
	backend := newFakeCartBackend()
	backend.failGetByUser = true
	store, _, _ := newTestStore(t, backend)

	err := store.Load(context.Background(), 1)
	require.Error(t, err)

	assert.Zero(t, backend.createCalls)
	assert.Equal(t, StateFailed, store.State())
	assert.Error(t, store.LastError())
}

func TestLoadReentrancyGuard(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	backend.releaseGetByUser = make(chan struct{})
	store, _, _ := newTestStore(t, backend)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Load(context.Background(), 1))
		}()
	}

	// Give both goroutines time to reach the loader before releasing it.
	time.Sleep(100 * time.Millisecond)
	close(backend.releaseGetByUser)
	wg.Wait()

	assert.Equal(t, 1, backend.getByUserCalls, "second load must share the in-flight fetch")
	assert.Equal(t, StateLoaded, store.State())
}

func TestAddItemLazyCreation(t *testing.T) {
	backend := newFakeCartBackend()
	store, _, _ := newTestStore(t, backend)

	require.NoError(t, store.AddItem(context.Background(), 1, 1, 1))

	assert.Equal(t, 1, backend.createCalls, "exactly one create")
	assert.Equal(t, 1, backend.addCalls, "exactly one add")
	assert.Equal(t, StateLoaded, store.State())
	assert.Equal(t, 1, store.ItemCount())
	assert.InDelta(t, 49.90, store.Total(), 0.001)
}

func TestAddItemWithoutUserOrCart(t *testing.T) {
	backend := newFakeCartBackend()
	store, _, _ := newTestStore(t, backend)

	err := store.AddItem(context.Background(), 0, 1, 1)
	assert.ErrorIs(t, err, ErrCartUnavailable)
	assert.Zero(t, backend.addCalls)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	backend := newFakeCartBackend()
	store, _, _ := newTestStore(t, backend)

	err := store.AddItem(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, backend.addCalls)
}

func TestMutationRefetchMatchesServer(t *testing.T) {
	backend := newFakeCartBackend()
	store, client, _ := newTestStore(t, backend)

	// The backend merges repeated adds of the same package into one line;
	// the local list must mirror that, not append twice.
	require.NoError(t, store.AddItem(context.Background(), 1, 1, 1))
	require.NoError(t, store.AddItem(context.Background(), 1, 1, 1))

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.Items()[0].Quantity)
	assert.Equal(t, 2, store.ItemCount())
	assert.InDelta(t, 99.80, store.Total(), 0.001)

	// Store state equals what a fresh fetch returns.
	fresh, err := client.GetCart(context.Background(), store.CartID())
	require.NoError(t, err)
	require.Len(t, fresh.Items, 1)
	assert.Equal(t, store.Items()[0].ID, fresh.Items[0].IDItem)
	assert.Equal(t, store.Items()[0].Quantity, fresh.Items[0].Quantidade)
}

func TestUpdateQuantity(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	store, _, _ := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))
	itemID := store.Items()[0].ID

	require.NoError(t, store.UpdateQuantity(context.Background(), itemID, 3))

	assert.Equal(t, 1, backend.updateCalls)
	assert.Equal(t, 3, store.ItemCount())
	assert.InDelta(t, 149.70, store.Total(), 0.001)
}

func TestUpdateQuantityFloorRemovesItem(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 2)
	store, _, _ := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))
	itemID := store.Items()[0].ID

	require.NoError(t, store.UpdateQuantity(context.Background(), itemID, 0))

	assert.Zero(t, backend.updateCalls, "a floor update must not hit the update endpoint")
	assert.Equal(t, 1, backend.removeCalls)
	assert.Empty(t, store.Items())
	assert.Zero(t, store.ItemCount())
	assert.Zero(t, store.Total())
}

func TestRemoveItem(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	backend.seedItem(9, 2)
	store, _, _ := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))
	first := store.Items()[0].ID

	require.NoError(t, store.RemoveItem(context.Background(), first))

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.ItemCount())
	assert.InDelta(t, 50.00, store.Total(), 0.001)
}

func TestMutationFailureRetainsPriorItems(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	store, _, _ := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))

	backend.mu.Lock()
	backend.failGet = true // the post-mutation re-fetch will fail
	backend.mu.Unlock()

	err := store.AddItem(context.Background(), 1, 9, 1)
	require.Error(t, err)

	assert.Equal(t, StateLoaded, store.State())
	require.Len(t, store.Items(), 1, "prior list retained")
	assert.Equal(t, int64(1), store.Items()[0].CoinID)
	assert.Error(t, store.LastError())
}

func TestClearResetsStateAndStorage(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	store, _, st := newTestStore(t, backend)
	require.NoError(t, store.Load(context.Background(), 1))

	_, hasID, _ := st.Get(storage.KeyCartID)
	require.True(t, hasID, "sync should persist the cart id")

	store.Clear()

	assert.Equal(t, StateEmpty, store.State())
	assert.Zero(t, store.CartID())
	assert.Empty(t, store.Items())
	for _, key := range []string{storage.KeyCart, storage.KeyCartID} {
		_, ok, err := st.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "key %q should be gone", key)
	}
}

func TestRestorePrefillsFromStorage(t *testing.T) {
	backend := newFakeCartBackend()
	store, _, st := newTestStore(t, backend)

	require.NoError(t, st.Put(storage.KeyCartID, []byte("77")))
	snapshot, _ := json.Marshal([]domain.CartItem{{ID: 1, CoinID: 9, Name: "50.000 Coins", Amount: "50.000", UnitPrice: 25.00, Platform: "PC", Quantity: 2}})
	require.NoError(t, st.Put(storage.KeyCart, snapshot))

	store.Restore()

	assert.Equal(t, int64(77), store.CartID())
	assert.Equal(t, 2, store.ItemCount())
	assert.Equal(t, StateEmpty, store.State(), "restored data is stale until the server is asked")
	assert.Zero(t, backend.getByUserCalls)
}

func TestEnsureLoadedSkipsWhenLoaded(t *testing.T) {
	backend := newFakeCartBackend()
	backend.seedItem(1, 1)
	store, _, _ := newTestStore(t, backend)

	require.NoError(t, store.EnsureLoaded(context.Background(), 1))
	require.NoError(t, store.EnsureLoaded(context.Background(), 1))

	assert.Equal(t, 1, backend.getByUserCalls)
}
