/*
Package handler provides the HTTP handlers and routing setup for the relay
server.

This file contains the WebSocket connect handler: rate limiting, upgrading
the HTTP connection, and handing the upgraded stream to a relay session.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"msgrelay/internal/app/relay"
	"msgrelay/internal/pkg/errs"
	"msgrelay/internal/pkg/limiter"
	"msgrelay/internal/pkg/logx"
	"msgrelay/internal/pkg/resp"
)

// HandleConnect creates the HTTP HandlerFunc that upgrades a client to
// WebSocket and runs its relay session to completion. The session handles
// name negotiation and all chat traffic from here on.
func HandleConnect(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Info("WebSocket connection established", "remote_ip", ip)

		session := relay.NewSession(deps.Registry, newWSConn(conn))
		session.Run()
	}
}
