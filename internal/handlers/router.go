package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/services"
)

// Dependencies are the services behind the stub API
type Dependencies struct {
	Auth     services.AuthService
	Catalog  services.CatalogService
	Orders   services.OrderService
	Envelope Envelope
	Log      *zap.Logger
}

// NewRouter wires every stub API route
func NewRouter(deps Dependencies) *mux.Router {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	users := NewUserHandler(deps.Auth, deps.Envelope, log)
	products := NewProductHandler(deps.Catalog, deps.Envelope, log)
	cart := NewCartHandler(deps.Orders, deps.Envelope, log)
	orders := NewOrderHandler(deps.Orders, deps.Envelope, log)
	secured := func(h http.HandlerFunc) http.HandlerFunc {
		return requireUser(deps.Auth, log, h)
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, "no route for "+r.URL.Path, http.StatusNotFound)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, r.Method+" is not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
	})

	r := mux.NewRouter()
	r.Use(logRequests(log))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// subrouters do not inherit the fallbacks of their parent
	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = notFound
	api.MethodNotAllowedHandler = notAllowed
	api.HandleFunc("/users/signup", users.Signup).Methods(http.MethodPost)
	api.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", users.Get).Methods(http.MethodGet)

	api.HandleFunc("/products", products.List).Methods(http.MethodGet)
	api.HandleFunc("/products/search", products.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", products.Get).Methods(http.MethodGet)

	api.HandleFunc("/cart", secured(cart.Get)).Methods(http.MethodGet)
	api.HandleFunc("/cart", secured(cart.Add)).Methods(http.MethodPost)

	api.HandleFunc("/orders", secured(orders.Create)).Methods(http.MethodPost)
	api.HandleFunc("/checkout", secured(orders.Create)).Methods(http.MethodPost)
	api.HandleFunc("/orders/mine", secured(orders.Mine)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", secured(orders.Get)).Methods(http.MethodGet)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request
func logRequests(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
