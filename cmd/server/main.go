package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/flowdraw/internal/asset"
	"github.com/inamate/flowdraw/internal/config"
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/engine"
	"github.com/inamate/flowdraw/internal/export"
	"github.com/inamate/flowdraw/internal/imageres"
	mw "github.com/inamate/flowdraw/internal/middleware"
	"github.com/inamate/flowdraw/internal/session"
	"github.com/inamate/flowdraw/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var docs store.Store
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, documents are kept in memory")
		docs = store.NewMemoryStore()
	} else {
		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := store.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			slog.Error("prepare database", "error", err)
			os.Exit(1)
		}
		docs = pg
	}

	images := imageres.NewLoader()
	factory := document.NewFactory(images, cfg.GlyphDir)

	if err := os.MkdirAll(cfg.AssetDir, 0o755); err != nil {
		slog.Error("create asset dir", "error", err)
		os.Exit(1)
	}
	watchDirs := []string{cfg.AssetDir}
	if _, err := os.Stat(cfg.GlyphDir); err == nil {
		watchDirs = append(watchDirs, cfg.GlyphDir)
	}
	watcher, err := images.Watch(200*time.Millisecond, watchDirs...)
	if err != nil {
		slog.Warn("image hot reload disabled", "error", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
	}

	newEngine := func() *engine.Engine {
		e := engine.New(factory)
		e.SetViewport(cfg.ViewportWidth, cfg.ViewportHeight)
		return e
	}
	hub := session.NewHub(newEngine, docs)

	renderer, err := export.NewRenderer(images)
	if err != nil {
		slog.Error("create renderer", "error", err)
		os.Exit(1)
	}

	documentHandler := store.NewHandler(store.NewService(docs, factory))
	assetHandler := asset.NewHandler(cfg.AssetDir, images)
	exportHandler := export.NewHandler(renderer, docs)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/assets/{assetId}", assetHandler.Remove).Methods("DELETE")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	r.HandleFunc("/export/png", exportHandler.ExportSnapshot).Methods("POST", "OPTIONS")
	r.HandleFunc("/export/{docId}.png", exportHandler.ExportDocument).Methods("GET")

	r.HandleFunc("/documents", documentHandler.List).Methods("GET")
	r.HandleFunc("/documents", documentHandler.Create).Methods("POST")
	r.HandleFunc("/documents/{docId}", documentHandler.Get).Methods("GET")
	r.HandleFunc("/documents/{docId}", documentHandler.Put).Methods("PUT")
	r.HandleFunc("/documents/{docId}", documentHandler.Delete).Methods("DELETE")

	r.HandleFunc("/ws", hub.Handler(cfg.Origins()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Sessions first so unsaved documents are flushed.
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "glyphs", cfg.GlyphDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
