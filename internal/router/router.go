package router

import (
	"net/http"

	"table-together/internal/handler"
	"table-together/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Auth     *handler.AuthHandler
	Address  *handler.AddressHandler
	Cart     *handler.CartHandler
	Favorite *handler.FavoriteHandler
	Checkout *handler.CheckoutHandler
	Metrics  http.Handler
}

// Options holds the settings the middleware chain needs.
type Options struct {
	APIKey         string
	AllowedOrigins []string
	Tokens         middleware.TokenParser
	Sessions       middleware.SessionLookup
	Requests       middleware.RequestObserver
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Session.Health)
	mux.Handle("GET /metrics", h.Metrics)

	// Public catalog and session creation
	mux.HandleFunc("POST /api/sessions", h.Session.Create)
	mux.HandleFunc("GET /api/catalog/categories", h.Catalog.Categories)
	mux.HandleFunc("GET /api/catalog/foods", h.Catalog.Foods)
	mux.HandleFunc("GET /api/catalog/offers", h.Catalog.Offers)

	// Session routes require a bearer token
	withSession := middleware.SessionAuth(opts.Tokens, opts.Sessions, logger)
	session := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, withSession(fn))
	}

	session("GET /api/session", h.Session.Get)
	session("DELETE /api/session", h.Session.End)
	session("POST /api/session/logout", h.Session.Logout)
	session("PUT /api/session/profile", h.Session.UpdateProfile)

	session("POST /api/session/auth/start", h.Auth.Start)
	session("POST /api/session/auth/verify", h.Auth.Verify)

	session("PUT /api/session/category", h.Catalog.SelectCategory)
	session("GET /api/session/foods", h.Catalog.SelectedFoods)

	session("GET /api/session/addresses", h.Address.List)
	session("POST /api/session/addresses", h.Address.Add)
	session("PUT /api/session/addresses/selected", h.Address.Select)

	session("GET /api/session/cart", h.Cart.Get)
	session("POST /api/session/cart", h.Cart.Add)
	session("DELETE /api/session/cart", h.Cart.Clear)
	session("DELETE /api/session/cart/{lineID}", h.Cart.Remove)

	session("GET /api/session/favorites", h.Favorite.List)
	session("POST /api/session/favorites", h.Favorite.Toggle)

	session("POST /api/session/checkout", h.Checkout.Pay)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.Metrics(opts.Requests)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
