package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/alttab"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout bounds graceful shutdown of the introspection server.
const ShutdownTimeout = 5 * time.Second

// Introspector exposes a read-only view of an engine.
type Introspector interface {
	View() domain.HistoryView
}

// Info describes the running daemon on GET /info.
type Info struct {
	Mode   string `json:"mode"`
	Socket string `json:"socket"`
}

// NewHandler creates the introspection router. metrics may be nil.
func NewHandler(engine Introspector, info Info, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"app":     "alttab",
			"version": strings.TrimSpace(alttab.Version),
			"mode":    info.Mode,
			"socket":  info.Socket,
		})
	})

	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.View())
	})

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Introspection server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
		return srv.Close()
	}
	if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
