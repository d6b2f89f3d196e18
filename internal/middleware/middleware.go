package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/bookhive/bookhive/internal/http/request"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Middleware struct {
	store *store.Store
}

func NewMiddleware(store *store.Store) *Middleware {
	return &Middleware{store: store}
}

func (m *Middleware) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-Auth-Token, Authorization, Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingRequest tags every request with an id and logs it on completion.
func (m *Middleware) LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		ctx := context.WithValue(r.Context(), request.RequestIDContextKey, requestID)
		ctx = context.WithValue(ctx, request.ClientIPContextKey, request.FindClientIP(r))
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)

		log.Debug("Request handled",
			zap.String("request_id", requestID),
			zap.String("client_ip", request.ClientIP(r)),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Duration("elapsed", time.Since(start)))
	})
}
