package view

import (
	"sync"

	"github.com/S41T4M4/fc-front/internal/session"
)

// Well-known page names.
const (
	PageHome     = "home"
	PageShop     = "shop"
	PageCart     = "cart"
	PageCheckout = "checkout"
	PageProfile  = "profile"
	PageSeller   = "seller"
	PageLoading  = "loading"
)

// Page is a registered view. Protected pages only render for an
// authenticated session.
type Page struct {
	Name      string
	Protected bool
}

// DefaultPages mirrors the storefront's page set.
func DefaultPages() []Page {
	return []Page{
		{Name: PageHome},
		{Name: PageShop, Protected: true},
		{Name: PageCart, Protected: true},
		{Name: PageCheckout, Protected: true},
		{Name: PageProfile, Protected: true},
		{Name: PageSeller, Protected: true},
	}
}

// Router selects the current page by name. Navigation is a same-process
// state assignment: no history stack, no URL reflection.
type Router struct {
	session  *session.Store
	fallback string

	mu      sync.Mutex
	pages   map[string]Page
	current string
}

func NewRouter(s *session.Store, pages []Page) *Router {
	r := &Router{
		session:  s,
		fallback: PageHome,
		pages:    make(map[string]Page, len(pages)),
		current:  PageHome,
	}
	for _, p := range pages {
		r.pages[p.Name] = p
	}
	// The fallback must always resolve, even with a custom page set.
	if _, ok := r.pages[r.fallback]; !ok {
		r.pages[r.fallback] = Page{Name: r.fallback}
	}
	return r
}

// Navigate sets the requested page. Unknown names fall back to home.
func (r *Router) Navigate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[name]; !ok {
		r.current = r.fallback
		return
	}
	r.current = name
}

// Current is the requested page name, before gating.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve applies the authentication gate: a protected page shows the
// loading view while the session is being checked and falls back to home
// for anonymous users.
func (r *Router) Resolve() string {
	r.mu.Lock()
	page := r.pages[r.current]
	r.mu.Unlock()

	if !page.Protected {
		return page.Name
	}
	if r.session.Loading() {
		return PageLoading
	}
	if !r.session.IsAuthenticated() {
		return r.fallback
	}
	return page.Name
}
