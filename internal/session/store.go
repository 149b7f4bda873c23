package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
	"github.com/S41T4M4/fc-front/internal/storage"
)

// Store owns the process-wide authentication state and its durable
// persistence. A nil current user means anonymous.
type Store struct {
	api     *api.Client
	storage storage.Store

	mu       sync.RWMutex
	user     *domain.User
	loading  bool
	lastErr  error
	onLogout []func()
}

func New(client *api.Client, st storage.Store) *Store {
	return &Store{api: client, storage: st}
}

// OnLogout registers a callback run synchronously whenever the session is
// torn down. The cart store registers its reset here so a cart never
// survives logout or leaks across identities.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Restore loads a previously persisted session, if any. It never touches the
// network; a record that fails to parse is discarded and the process starts
// anonymous.
func (s *Store) Restore() {
	value, ok, err := s.storage.Get(storage.KeyUser)
	if err != nil {
		log.Printf("session restore read error: %v", err)
		return
	}
	if !ok {
		return
	}

	var user domain.User
	if err := json.Unmarshal(value, &user); err != nil {
		log.Printf("discarding corrupted session record: %v", err)
		if err := s.storage.Delete(storage.KeyUser); err != nil {
			log.Printf("session record delete error: %v", err)
		}
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login authenticates against the backend. On success the session becomes
// current and, when remember is set, is persisted. On failure the prior
// state is left untouched and the error is returned for the caller's UI.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.setError(err)
		return err
	}
	if !resp.Success || resp.UserID == 0 {
		err := fmt.Errorf("login failed: %s", messageOr(resp.Message, "invalid credentials"))
		s.setError(err)
		return err
	}

	user := domain.User{
		ID:           resp.UserID,
		Name:         resp.Nome,
		Email:        resp.Email,
		Role:         resp.Role,
		RegisteredAt: time.Now(),
	}
	if user.Role == "" {
		user.Role = domain.RoleBuyer
	}
	if resp.Token != nil {
		user.Token = resp.Token.Token
	}

	s.mu.Lock()
	s.user = &user
	s.lastErr = nil
	s.mu.Unlock()

	if remember {
		s.persist(user)
	}
	return nil
}

// Register creates an account and, on success, immediately logs in with the
// same credentials. A registered session is always remembered.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	if err := validateRegistration(name, email, password); err != nil {
		return err
	}

	s.setLoading(true)
	resp, err := s.api.Register(ctx, api.RegisterRequest{Nome: name, Email: email, Senha: password})
	s.setLoading(false)
	if err != nil {
		s.setError(err)
		return err
	}
	if !resp.Success {
		err := fmt.Errorf("registration failed: %s", messageOr(resp.Message, "could not create account"))
		s.setError(err)
		return err
	}

	return s.Login(ctx, email, password, true)
}

// Logout clears the in-memory session, all persisted session and cart
// records, and notifies logout listeners. Safe to call while anonymous.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.lastErr = nil
	listeners := make([]func(), len(s.onLogout))
	copy(listeners, s.onLogout)
	s.mu.Unlock()

	if err := s.storage.Delete(storage.KeyUser, storage.KeyCart, storage.KeyCartID); err != nil {
		log.Printf("logout storage cleanup error: %v", err)
	}

	for _, fn := range listeners {
		fn()
	}
}

// Update is a partial change to the current user. Nil fields are left as-is.
type Update struct {
	Name  *string
	Email *string
	Role  *string
	Token *string
}

// UpdateUser merges the provided fields into the current session and
// re-persists it. No-op while anonymous.
func (s *Store) UpdateUser(upd Update) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	if upd.Name != nil {
		s.user.Name = *upd.Name
	}
	if upd.Email != nil {
		s.user.Email = *upd.Email
	}
	if upd.Role != nil {
		s.user.Role = *upd.Role
	}
	if upd.Token != nil {
		s.user.Token = *upd.Token
	}
	user := *s.user
	s.mu.Unlock()

	s.persist(user)
}

// Current returns a copy of the authenticated user, if any.
func (s *Store) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) persist(user domain.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		log.Printf("session marshal error: %v", err)
		return
	}
	if err := s.storage.Put(storage.KeyUser, payload); err != nil {
		log.Printf("session persist error: %v", err)
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
