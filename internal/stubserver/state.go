package stubserver

import (
	"sync"
	"time"
)

type user struct {
	id       int64
	name     string
	email    string
	password string
	role     string
}

type cartItem struct {
	id     int64
	coinID int64
	qty    int
}

type serverCart struct {
	id     int64
	userID int64
	items  []*cartItem
}

type coin struct {
	id         int64
	platformID int64
	coins      int64
	price      float64
	platform   string
}

type platform struct {
	id   int64
	name string
}

type order struct {
	id       int64
	userID   int64
	placedAt time.Time
	total    float64
	status   string
	method   string
}

// state is the in-memory backend: users, carts, the seeded catalog and
// completed orders, all behind one mutex.
type state struct {
	mu sync.Mutex

	nextUserID int64
	nextCartID int64
	nextItemID int64
	nextOrder  int64

	users     map[string]*user  // by email
	carts     map[int64]*serverCart
	userCarts map[int64]int64 // userID -> cartID
	orders    map[int64]*order

	platforms []platform
	coins     []coin
}

func newState() *state {
	return &state{
		nextUserID: 1,
		nextCartID: 1,
		nextItemID: 1,
		nextOrder:  1,
		users:      make(map[string]*user),
		carts:      make(map[int64]*serverCart),
		userCarts:  make(map[int64]int64),
		orders:     make(map[int64]*order),
		platforms: []platform{
			{id: 1, name: "PC"},
			{id: 2, name: "PlayStation 5"},
			{id: 3, name: "Xbox Series X"},
			{id: 4, name: "PlayStation 4"},
			{id: 5, name: "Xbox One"},
		},
		coins: []coin{
			{id: 1, platformID: 1, coins: 100000, price: 49.90, platform: "PC"},
			{id: 2, platformID: 1, coins: 250000, price: 109.90, platform: "PC"},
			{id: 3, platformID: 1, coins: 500000, price: 199.90, platform: "PC"},
			{id: 4, platformID: 2, coins: 100000, price: 54.90, platform: "PlayStation 5"},
			{id: 5, platformID: 2, coins: 250000, price: 119.90, platform: "PlayStation 5"},
			{id: 6, platformID: 3, coins: 100000, price: 54.90, platform: "Xbox Series X"},
			{id: 7, platformID: 4, coins: 100000, price: 44.90, platform: "PlayStation 4"},
			{id: 8, platformID: 5, coins: 100000, price: 44.90, platform: "Xbox One"},
			{id: 9, platformID: 1, coins: 50000, price: 25.00, platform: "PC"},
		},
	}
}

func (s *state) coinByID(id int64) (coin, bool) {
	for _, c := range s.coins {
		if c.id == id {
			return c, true
		}
	}
	return coin{}, false
}

func (s *state) cartTotal(c *serverCart) float64 {
	total := 0.0
	for _, item := range c.items {
		if mc, ok := s.coinByID(item.coinID); ok {
			total += mc.price * float64(item.qty)
		}
	}
	return total
}
