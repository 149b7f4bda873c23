package seller

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrOfferNotFound = errors.New("offer not found")

// Offer is a seller's coin listing. The dashboard is not wired to a real
// marketplace backend; offers live in this in-memory store only.
type Offer struct {
	ID           string
	SellerID     int64
	PlatformID   int64
	Coins        int64
	PricePer100k float64
	Quote        Quote
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OfferStore keeps a seller's offers in memory.
type OfferStore struct {
	mu     sync.RWMutex
	offers map[string]*Offer
}

func NewOfferStore() *OfferStore {
	return &OfferStore{offers: make(map[string]*Offer)}
}

func (s *OfferStore) Create(sellerID, platformID, coins int64, pricePer100k float64) (Offer, error) {
	platform, ok := PlatformByID(platformID)
	if !ok {
		return Offer{}, ErrInactivePlatform
	}
	quote, err := NewQuote(platform, coins, pricePer100k)
	if err != nil {
		return Offer{}, err
	}

	now := time.Now()
	offer := &Offer{
		ID:           uuid.NewString(),
		SellerID:     sellerID,
		PlatformID:   platformID,
		Coins:        coins,
		PricePer100k: pricePer100k,
		Quote:        quote,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.offers[offer.ID] = offer
	s.mu.Unlock()
	return *offer, nil
}

func (s *OfferStore) Update(id string, platformID, coins int64, pricePer100k float64) (Offer, error) {
	platform, ok := PlatformByID(platformID)
	if !ok {
		return Offer{}, ErrInactivePlatform
	}
	quote, err := NewQuote(platform, coins, pricePer100k)
	if err != nil {
		return Offer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	offer, ok := s.offers[id]
	if !ok {
		return Offer{}, ErrOfferNotFound
	}
	offer.PlatformID = platformID
	offer.Coins = coins
	offer.PricePer100k = pricePer100k
	offer.Quote = quote
	offer.UpdatedAt = time.Now()
	return *offer, nil
}

func (s *OfferStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[id]; !ok {
		return ErrOfferNotFound
	}
	delete(s.offers, id)
	return nil
}

// ListBySeller returns a seller's offers, newest first.
func (s *OfferStore) ListBySeller(sellerID int64) []Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Offer
	for _, offer := range s.offers {
		if offer.SellerID == sellerID {
			out = append(out, *offer)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Stats is the dashboard summary block. Values are simulated; there is no
// earnings backend behind the dashboard.
type Stats struct {
	TotalEarnings   float64
	MonthlyEarnings float64
	ActiveOffers    int
	CompletedOrders int
}

// SimulatedStats returns the static demo numbers the dashboard renders.
func SimulatedStats(store *OfferStore, sellerID int64) Stats {
	return Stats{
		TotalEarnings:   2450.75,
		MonthlyEarnings: 1250.50,
		ActiveOffers:    len(store.ListBySeller(sellerID)),
		CompletedOrders: 37,
	}
}
