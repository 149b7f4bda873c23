// Package fcfront composes the storefront client: the API gateway, the
// session and cart stores, the catalog service and the view router, wired
// together with explicit dependency injection instead of ambient singletons.
package fcfront

import (
	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/cart"
	"github.com/S41T4M4/fc-front/internal/catalog"
	"github.com/S41T4M4/fc-front/internal/checkout"
	"github.com/S41T4M4/fc-front/internal/config"
	"github.com/S41T4M4/fc-front/internal/session"
	"github.com/S41T4M4/fc-front/internal/storage"
	"github.com/S41T4M4/fc-front/internal/view"
)

// App holds the client's services for the UI layer to consume.
type App struct {
	API     *api.Client
	Storage storage.Store
	Session *session.Store
	Cart    *cart.Store
	Catalog *catalog.Service
	Router  *view.Router
}

// New opens durable storage at the configured path and wires the services.
// Persisted session and cart records are restored before returning.
func New(cfg config.Config) (*App, error) {
	store, err := storage.OpenSQLite(cfg.StatePath, cfg.MigrationsPath)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(cfg, store), nil
}

// NewWithStorage wires the services over an existing store. Used by tests
// and by runs that should not persist anything.
func NewWithStorage(cfg config.Config, store storage.Store) *App {
	client := api.NewClient(cfg.APIBaseURL)
	sess := session.New(client, store)
	cartStore := cart.New(client, store)

	// Logout is the designated cart teardown trigger.
	sess.OnLogout(cartStore.Clear)

	sess.Restore()
	cartStore.Restore()

	return &App{
		API:     client,
		Storage: store,
		Session: sess,
		Cart:    cartStore,
		Catalog: catalog.NewService(client),
		Router:  view.NewRouter(sess, view.DefaultPages()),
	}
}

// NewCheckout starts a checkout attempt over the current cart.
func (a *App) NewCheckout() *checkout.Flow {
	return checkout.NewFlow(a.API, a.Cart)
}

func (a *App) Close() error {
	return a.Storage.Close()
}
