package server

import (
	"context"
	"fmt"
	"net/http"

	v1 "github.com/bookhive/bookhive/internal/api/v1"
	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/search"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server.
func StartServer(store *store.Store, resolver *search.Resolver) *http.Server {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, resolver),
	}

	startHTTPServer(server)

	return server
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

// Shutdown drains in-flight requests before returning.
func Shutdown(ctx context.Context, server *http.Server) {
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
}

func setupHandler(store *store.Store, resolver *search.Resolver) http.Handler {
	router := mux.NewRouter()

	apiHandler := v1.NewHandler(store, resolver)
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		_, _ = w.Write([]byte("OK"))
	}).Name("healthcheck")

	return router
}
