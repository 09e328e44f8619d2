package handler

import (
	"fmt"
	"net/http"
)

// HomeHandler serves the landing page and static assets.
type HomeHandler struct {
	assets http.Handler
}

// NewHomeHandler creates a home handler serving assets from assetsDir.
func NewHomeHandler(assetsDir string) *HomeHandler {
	return &HomeHandler{
		assets: http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))),
	}
}

// Home lists the available endpoints in plain text
// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, `The server is running!
These are the endpoints available:
  POST   /api/chats                 create a chat for a named client
  GET    /api/chats/{id}            read a chat
  POST   /api/chats/{id}/messages   send a message and get the reply
  DELETE /api/chats/{id}            delete a chat
  GET    /api/clients               list client profiles
  GET    /health                    health check
  GET    /assets/{path}             static assets
`)
}

// Assets serves static files
// GET /assets/{path...}
func (h *HomeHandler) Assets(w http.ResponseWriter, r *http.Request) {
	h.assets.ServeHTTP(w, r)
}

// HealthCheck reports liveness
// GET /health
func (h *HomeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
