/*
Package handler provides the HTTP handlers and routing setup for the relay
server.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating to the specific handlers
(chat page, WebSocket connect, user listing).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"msgrelay/internal/pkg/limiter"
	"msgrelay/internal/pkg/logx"
	"msgrelay/internal/pkg/resp"
)

const (
	// ConnectRate and ConnectBurst limit how often one IP may open new
	// chat connections.
	ConnectRate  = 0.2
	ConnectBurst = 5

	// ListRate and ListBurst limit polling of the user listing.
	ListRate  = 1
	ListBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the
// application: per-IP rate limiters, CORS, the standard middleware chain,
// and the chat routes.
func Router(deps *AppDeps) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)
	listLimiter := limiter.NewIPRateLimiter(rate.Limit(ListRate), ListBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "msgrelay",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Get("/", HandleIndex())

	rateLimitedList := listLimiter.Middleware(HandleListUsers(deps))
	r.Get("/users", rateLimitedList.ServeHTTP)

	r.Get("/connect", HandleConnect(wsUpgrader, connectLimiter, deps))

	return r
}
