package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"zentra/internal/common"
	"zentra/internal/wire"
)

func main() {
	app, cleanup, err := wire.InitializeNotifsApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:           net.JoinHostPort(app.Config.Server.Host, app.Config.Server.HTTPPort),
		Handler:        setupRouter(app),
		ReadTimeout:    app.Config.Server.ReadTimeout,
		WriteTimeout:   app.Config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return shutdown(shutdownCtx, server, app.Registry, app.Logger)
	})

	if err := g.Wait(); err != nil {
		app.Logger.Error("server stopped with error", zap.Error(err))
		return
	}
	app.Logger.Info("server gracefully stopped")
}

// shutdown stops accepting connections first, then closes the websocket
// channels, which Shutdown does not track once hijacked.
func shutdown(ctx context.Context, server *http.Server, channels interface{ CloseAll() error }, logger *zap.Logger) error {
	err := server.Shutdown(ctx)
	if closeErr := channels.CloseAll(); closeErr != nil {
		logger.Warn("closing push channels", zap.Error(closeErr))
	}
	return err
}

func setupRouter(app *wire.NotifsApp) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(loggingMiddleware(app.Logger))

	router.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(app.Metrics, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.Handle("/ws", app.Push).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.RequireUser(app.Resolver))
	app.Notifications.Register(api)
	app.Social.Register(api)
	app.Feed.Register(api)

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "zentra-notifications"})
}
