package httpapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/museun/dono-server/internal/logger"
	"github.com/museun/dono-server/internal/store"
)

// SchemaInspector is the part of the store the admin routes need.
type SchemaInspector interface {
	PingContext(ctx context.Context) error
	Tables(ctx context.Context) ([]store.Table, error)
}

type Handler struct {
	Store  SchemaInspector
	Logger *logger.Logger
}

func NewHandler(s SchemaInspector, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.Default()
	}
	return &Handler{
		Store:  s,
		Logger: l.WithComponent("http"),
	}
}

// Router builds the admin router with the standard middleware stack.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/schema", h.Schema)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.PingContext(r.Context()); err != nil {
		h.Logger.Warn("Health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Store.Tables(r.Context())
	if err != nil {
		h.Logger.Error("Failed to inspect schema", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}
