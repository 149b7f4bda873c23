// Package stubserver is a local stand-in for the storefront backend. It
// implements the REST surface the client consumes over in-memory state so
// the SDK and its tests can run without the real service. It owns no real
// pricing, inventory or payment logic.
package stubserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/S41T4M4/fc-front/internal/api"
)

type Server struct {
	state *state
}

func New() *Server {
	return &Server{state: newState()}
}

// Handler builds the router. Routes are mounted under /api like the real
// backend's base path.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/Auth/login", s.login)
		r.Post("/Auth/register", s.register)
		r.Get("/Auth/validate", s.validate)

		r.Get("/Plataforma", s.platforms)
		r.Get("/Plataforma/{id}", s.platformByID)
		r.Get("/Moeda", s.coins)
		r.Get("/Moeda/plataforma/{platformId}", s.coinsByPlatform)

		r.Post("/Carrinho/criar", s.createCart)
		r.Get("/Carrinho/{cartId}", s.getCart)
		r.Get("/Carrinho/usuario/{userId}", s.getCartByUser)
		r.Post("/Carrinho/adicionar-item", s.addItem)
		r.Delete("/Carrinho/remover-item/{itemId}", s.removeItem)
		r.Put("/Carrinho/atualizar-item/{itemId}", s.updateItem)

		r.Post("/Checkout/finalizar-compra", s.finalize)
	})

	return r
}

// SeedUser registers an account directly, for tests and demos.
func (s *Server) SeedUser(name, email, password, role string) int64 {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	u := &user{
		id:       s.state.nextUserID,
		name:     name,
		email:    email,
		password: password,
		role:     role,
	}
	s.state.nextUserID++
	s.state.users[email] = u
	return u.id
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.state.mu.Lock()
	u, ok := s.state.users[req.Email]
	s.state.mu.Unlock()

	if !ok || u.password != req.Password {
		respondJSON(w, http.StatusOK, api.LoginResponse{
			Success: false,
			Message: "invalid email or password",
		})
		return
	}

	respondJSON(w, http.StatusOK, api.LoginResponse{
		Success: true,
		Token:   &api.TokenEnvelope{Token: uuid.NewString()},
		UserID:  u.id,
		Email:   u.email,
		Nome:    u.name,
		Role:    u.role,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		respondJSON(w, http.StatusOK, api.RegisterResponse{
			Success: false,
			Message: "nome, email and senha are required",
		})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, exists := s.state.users[req.Email]; exists {
		respondJSON(w, http.StatusOK, api.RegisterResponse{
			Success: false,
			Message: "email already registered",
		})
		return
	}

	u := &user{
		id:       s.state.nextUserID,
		name:     req.Nome,
		email:    req.Email,
		password: req.Senha,
		role:     "comprador",
	}
	s.state.nextUserID++
	s.state.users[req.Email] = u

	respondJSON(w, http.StatusOK, api.RegisterResponse{Success: true, UserID: u.id})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "token valid"})
}

func (s *Server) platforms(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	dtos := make([]api.PlatformDTO, len(s.state.platforms))
	for i, p := range s.state.platforms {
		dtos[i] = api.PlatformDTO{IDPlataforma: p.id, DescricaoPlataforma: p.name}
	}
	respondJSON(w, http.StatusOK, api.PlatformsResponse{Success: true, Platforms: dtos})
}

func (s *Server) platformByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid platform id")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, p := range s.state.platforms {
		if p.id == id {
			respondJSON(w, http.StatusOK, api.PlatformsResponse{
				Success:   true,
				Platforms: []api.PlatformDTO{{IDPlataforma: p.id, DescricaoPlataforma: p.name}},
			})
			return
		}
	}
	respondError(w, http.StatusNotFound, "platform not found")
}

func (s *Server) coins(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	respondJSON(w, http.StatusOK, api.CoinPackagesResponse{
		Success:  true,
		Packages: coinDTOs(s.state.coins),
	})
}

func (s *Server) coinsByPlatform(w http.ResponseWriter, r *http.Request) {
	platformID, err := strconv.ParseInt(chi.URLParam(r, "platformId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid platform id")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	var matched []coin
	for _, c := range s.state.coins {
		if c.platformID == platformID {
			matched = append(matched, c)
		}
	}
	respondJSON(w, http.StatusOK, api.CoinPackagesResponse{
		Success:  true,
		Packages: coinDTOs(matched),
	})
}

func coinDTOs(coins []coin) []api.CoinPackageDTO {
	dtos := make([]api.CoinPackageDTO, len(coins))
	for i, c := range coins {
		dtos[i] = api.CoinPackageDTO{
			IDMoeda:        c.id,
			PlataformaID:   c.platformID,
			Quantidade:     c.coins,
			Valor:          c.price,
			PlataformaNome: c.platform,
		}
	}
	return dtos
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
