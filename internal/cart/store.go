package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
	"github.com/S41T4M4/fc-front/internal/storage"
)

// State is the explicit cart lifecycle. The cart id is only meaningful in
// StateLoaded; there is no "loaded with a null id" combination.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrCartUnavailable = errors.New("cart not found and could not be created")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Store mirrors the server-side cart. The server is the single source of
// truth: every mutation is followed by a full re-fetch, never a local-only
// splice. Mutations are serialized per store so a later-issued request can
// never be overwritten by an earlier-completing one.
type Store struct {
	api     *api.Client
	storage storage.Store

	loads  singleflight.Group
	mutate sync.Mutex

	mu      sync.RWMutex
	state   State
	cartID  int64
	items   []domain.CartItem
	lastErr error
}

func New(client *api.Client, st storage.Store) *Store {
	return &Store{api: client, storage: st}
}

// Restore reads the persisted cart id and item snapshot as a stale prefill.
// The state stays StateEmpty so the next EnsureLoaded still asks the server.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.storage.Get(storage.KeyCartID); err == nil && ok {
		if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			s.cartID = id
		}
	}
	if raw, ok, err := s.storage.Get(storage.KeyCart); err == nil && ok {
		var items []domain.CartItem
		if err := json.Unmarshal(raw, &items); err == nil {
			s.items = items
		} else {
			log.Printf("discarding corrupted cart snapshot: %v", err)
		}
	}
}

// EnsureLoaded loads the cart once for an authenticated user. Already-loaded
// stores are left alone.
func (s *Store) EnsureLoaded(ctx context.Context, userID int64) error {
	if s.State() == StateLoaded {
		return nil
	}
	return s.Load(ctx, userID)
}

// Load fetches the user's cart, creating one server-side when the backend
// reports none. Concurrent calls share a single in-flight fetch: re-entrant
// invocations (rapid repeated mounts) cannot race a duplicate creation.
func (s *Store) Load(ctx context.Context, userID int64) error {
	_, err, _ := s.loads.Do("load", func() (any, error) {
		return nil, s.load(ctx, userID)
	})
	return err
}

func (s *Store) load(ctx context.Context, userID int64) error {
	s.mu.Lock()
	prev := s.state
	s.state = StateLoading
	s.mu.Unlock()

	resp, err := s.api.GetCartByUser(ctx, userID)
	switch {
	case err == nil && resp.Success && resp.CartID != 0 && resp.Items != nil:
		s.install(resp.CartID, itemsFromDTO(resp.Items))
		return nil
	case err == nil, api.IsNotFound(err):
		// Confirmed absence: a 404, a falsy success, or a reply without a
		// cart id or items field all mean no cart yet for this user.
		return s.create(ctx, userID, prev)
	default:
		s.failLoad(prev, err)
		return err
	}
}

func (s *Store) create(ctx context.Context, userID int64, prev State) error {
	resp, err := s.api.CreateCart(ctx, userID)
	if err != nil {
		s.failLoad(prev, err)
		return err
	}
	if !resp.Success || resp.CartID == 0 {
		s.failLoad(prev, ErrCartUnavailable)
		return ErrCartUnavailable
	}
	s.install(resp.CartID, nil)
	return nil
}

// AddItem adds a coin package to the cart. When no cart id is known yet for
// an authenticated user, the create/load sequence runs first; the add never
// silently drops the item.
func (s *Store) AddItem(ctx context.Context, userID, coinID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	id := s.CartID()
	if id == 0 {
		if userID == 0 {
			return ErrCartUnavailable
		}
		if err := s.Load(ctx, userID); err != nil {
			return err
		}
		if id = s.CartID(); id == 0 {
			s.setError(ErrCartUnavailable)
			return ErrCartUnavailable
		}
	}

	resp, err := s.api.AddCartItem(ctx, id, coinID, quantity)
	if err := mutationError(resp, err, "add item"); err != nil {
		s.setError(err)
		return err
	}
	return s.refresh(ctx, id)
}

// RemoveItem removes a line by its server-assigned item id.
func (s *Store) RemoveItem(ctx context.Context, itemID int64) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()
	return s.removeLocked(ctx, itemID)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or below is
// equivalent to removal, not an error and not a clamp.
func (s *Store) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, itemID)
	}

	id := s.CartID()
	if id == 0 {
		return ErrCartUnavailable
	}
	resp, err := s.api.UpdateCartItemQuantity(ctx, itemID, quantity)
	if err := mutationError(resp, err, "update quantity"); err != nil {
		s.setError(err)
		return err
	}
	return s.refresh(ctx, id)
}

func (s *Store) removeLocked(ctx context.Context, itemID int64) error {
	id := s.CartID()
	if id == 0 {
		return ErrCartUnavailable
	}
	resp, err := s.api.RemoveCartItem(ctx, itemID)
	if err := mutationError(resp, err, "remove item"); err != nil {
		s.setError(err)
		return err
	}
	return s.refresh(ctx, id)
}

// Clear forgets the cart entirely, in memory and in durable storage. The
// session store calls this on logout.
func (s *Store) Clear() {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	s.mu.Lock()
	s.state = StateEmpty
	s.cartID = 0
	s.items = nil
	s.lastErr = nil
	s.mu.Unlock()

	if err := s.storage.Delete(storage.KeyCart, storage.KeyCartID); err != nil {
		log.Printf("cart storage cleanup error: %v", err)
	}
}

// refresh replaces the whole item list from a fresh GetCart. On failure the
// prior list is retained and the error recorded.
func (s *Store) refresh(ctx context.Context, cartID int64) error {
	resp, err := s.api.GetCart(ctx, cartID)
	if err != nil {
		s.setError(err)
		return err
	}
	if !resp.Success {
		err := fmt.Errorf("cart refresh failed: %s", messageOr(resp.Message, "backend rejected the request"))
		s.setError(err)
		return err
	}
	s.install(cartID, itemsFromDTO(resp.Items))
	return nil
}

func (s *Store) install(cartID int64, items []domain.CartItem) {
	s.mu.Lock()
	s.state = StateLoaded
	s.cartID = cartID
	s.items = items
	s.lastErr = nil
	s.mu.Unlock()

	s.persist(cartID, items)
}

func (s *Store) persist(cartID int64, items []domain.CartItem) {
	if err := s.storage.Put(storage.KeyCartID, []byte(strconv.FormatInt(cartID, 10))); err != nil {
		log.Printf("cart id persist error: %v", err)
	}
	payload, err := json.Marshal(items)
	if err != nil {
		log.Printf("cart snapshot marshal error: %v", err)
		return
	}
	if err := s.storage.Put(storage.KeyCart, payload); err != nil {
		log.Printf("cart snapshot persist error: %v", err)
	}
}

// failLoad records a hard load failure. A store that was already loaded
// keeps its items and state; one that never loaded becomes StateFailed.
func (s *Store) failLoad(prev State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if prev == StateLoaded {
		s.state = StateLoaded
	} else {
		s.state = StateFailed
	}
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) CartID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartID
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of quantities, recomputed on every read.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ItemCount(s.items)
}

// Total is the sum of unit price times quantity, recomputed on every read.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Total(s.items)
}

func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func mutationError(resp *api.MutationResponse, err error, op string) error {
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s failed: %s", op, messageOr(resp.Message, "backend rejected the request"))
	}
	return nil
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
