package domain

import "time"

// Order is the confirmation the backend returns after checkout.
type Order struct {
	ID       int64     `json:"idPedido"`
	UserID   int64     `json:"idUser"`
	PlacedAt time.Time `json:"dataPedido"`
	Total    float64   `json:"total"`
	Status   string    `json:"status"`
}
