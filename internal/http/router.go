package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	RateLimit      int // requests per minute per IP on /api
}

// NewRouter assembles the storefront API.
func NewRouter(cfg RouterConfig, products *ProductHandler, carts *CartHandler, ordersH *OrderHandler, marketing *MarketingHandler, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{id}", products.Get)
		})
		r.Post("/seed-products", products.Seed)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", carts.Save)
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", carts.Get)
				r.Delete("/", carts.Clear)
				r.Get("/totals", carts.Totals)
				r.Get("/suggestions", carts.Suggestions)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{productID}", carts.UpdateQuantity)
				r.Delete("/items/{productID}", carts.RemoveItem)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersH.Submit)
			r.Get("/{id}", ordersH.Get)
		})

		r.Post("/newsletter", marketing.Newsletter)
		r.Post("/contact", marketing.Contact)
	})

	return r
}

// requestLogger is chi's Logger middleware shape, writing through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
