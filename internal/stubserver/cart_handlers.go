package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/S41T4M4/fc-front/internal/api"
)

func (s *Server) createCart(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.IDUser <= 0 {
		respondError(w, http.StatusBadRequest, "idUser must be positive")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	// One cart per user; a second create returns the existing one.
	if existing, ok := s.state.userCarts[req.IDUser]; ok {
		respondJSON(w, http.StatusOK, api.CreateCartResponse{Success: true, CartID: existing})
		return
	}

	c := &serverCart{id: s.state.nextCartID, userID: req.IDUser}
	s.state.nextCartID++
	s.state.carts[c.id] = c
	s.state.userCarts[req.IDUser] = c.id

	respondJSON(w, http.StatusCreated, api.CreateCartResponse{Success: true, CartID: c.id})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c, ok := s.state.carts[cartID]
	if !ok {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(c))
}

func (s *Server) getCartByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cartID, ok := s.state.userCarts[userID]
	if !ok {
		respondError(w, http.StatusNotFound, "user has no cart")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(s.state.carts[cartID]))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req api.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantidade < 1 {
		respondError(w, http.StatusBadRequest, "quantidade must be at least 1")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c, ok := s.state.carts[req.IDCarrinho]
	if !ok {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	if _, ok := s.state.coinByID(req.IDMoeda); !ok {
		respondError(w, http.StatusBadRequest, "unknown coin package")
		return
	}

	// Same package twice merges into one line.
	for _, item := range c.items {
		if item.coinID == req.IDMoeda {
			item.qty += req.Quantidade
			respondJSON(w, http.StatusOK, api.MutationResponse{Success: true})
			return
		}
	}

	c.items = append(c.items, &cartItem{
		id:     s.state.nextItemID,
		coinID: req.IDMoeda,
		qty:    req.Quantidade,
	})
	s.state.nextItemID++
	respondJSON(w, http.StatusCreated, api.MutationResponse{Success: true})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, c := range s.state.carts {
		for i, item := range c.items {
			if item.id == itemID {
				c.items = append(c.items[:i], c.items[i+1:]...)
				respondJSON(w, http.StatusOK, api.MutationResponse{Success: true})
				return
			}
		}
	}
	respondError(w, http.StatusNotFound, "item not found")
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var req api.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, c := range s.state.carts {
		for i, item := range c.items {
			if item.id == itemID {
				if req.Quantidade <= 0 {
					c.items = append(c.items[:i], c.items[i+1:]...)
				} else {
					item.qty = req.Quantidade
				}
				respondJSON(w, http.StatusOK, api.MutationResponse{Success: true})
				return
			}
		}
	}
	respondError(w, http.StatusNotFound, "item not found")
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	var req api.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c, ok := s.state.carts[req.IDCarrinho]
	if !ok {
		respondError(w, http.StatusNotFound, "cart not found")
		return
	}
	if len(c.items) == 0 {
		respondJSON(w, http.StatusOK, api.CheckoutResponse{
			Success: false,
			Message: "cart is empty",
		})
		return
	}

	o := &order{
		id:       s.state.nextOrder,
		userID:   c.userID,
		placedAt: time.Now(),
		total:    s.state.cartTotal(c),
		status:   "CONFIRMED",
		method:   req.MetodoPagamento,
	}
	s.state.nextOrder++
	s.state.orders[o.id] = o

	// Fulfilled carts start over empty.
	c.items = nil

	respondJSON(w, http.StatusOK, api.CheckoutResponse{
		Success: true,
		Message: "purchase confirmed",
		Pedido: api.OrderDTO{
			IDPedido:   o.id,
			IDUser:     o.userID,
			DataPedido: o.placedAt.Format(time.RFC3339),
			Total:      o.total,
			Status:     o.status,
		},
	})
}

func (s *Server) cartResponse(c *serverCart) api.CartResponse {
	items := make([]api.CartItemDTO, len(c.items))
	for i, item := range c.items {
		mc, _ := s.state.coinByID(item.coinID)
		items[i] = api.CartItemDTO{
			IDItem:     item.id,
			IDCarrinho: c.id,
			IDMoeda:    item.coinID,
			Quantidade: item.qty,
			Moeda: api.CoinDTO{
				IDMoeda:    mc.id,
				Quantidade: mc.coins,
				Valor:      mc.price,
				Plataforma: mc.platform,
			},
		}
	}
	return api.CartResponse{Success: true, CartID: c.id, Items: items}
}
