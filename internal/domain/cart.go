package domain

// CartItem is one line of the locally mirrored cart. ID is the
// server-assigned item id, distinct from the underlying coin id.
type CartItem struct {
	ID        int64   `json:"id"`
	CoinID    int64   `json:"coinId"`
	Name      string  `json:"name"`
	Amount    string  `json:"amount"`
	UnitPrice float64 `json:"price"`
	Platform  string  `json:"platform"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ItemCount sums the quantities of all items.
func ItemCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Total sums the subtotals of all items.
func Total(items []CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}
