// Command alnumd serves the actor-backed alphanumeric classifier over HTTP
// and, optionally, NATS.
//
//	GET /classify/{char}  -> {"char":65,"alnum":true}
//	GET /healthz
//	GET /metrics          (Prometheus)
//
// Configuration comes from an optional YAML file (-config) overlaid with
// ALNUM_* environment variables.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	natsadapter "github.com/jeffrey-a-meunier/gsi-code-challenge/adapters/nats"
	promadapter "github.com/jeffrey-a-meunier/gsi-code-challenge/adapters/prometheus"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/classify"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("alnumd failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Log.Level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === metrics ===
	reg := prometheus.NewRegistry()
	m := promadapter.NewAllMetrics(reg)

	// === classification service ===
	svc := classify.New(classify.Options{
		Context:       ctx,
		Logger:        log,
		Metrics:       m.Service,
		WorkerMetrics: m.Worker,
	})

	// === optional NATS exposure ===
	if cfg.Nats.Enabled {
		var connect natsadapter.Connector
		if cfg.Nats.URL != "" {
			connect = natsadapter.ConnectURL(cfg.Nats.URL)
		}
		natsServer, err := natsadapter.NewServer(ctx, natsadapter.ServerConfig{
			Connect:       connect,
			Log:           log,
			SubjectPrefix: cfg.Nats.SubjectPrefix,
			Service:       svc,
		})
		if err != nil {
			return fmt.Errorf("start nats server: %w", err)
		}
		defer natsServer.Close()
	}

	// === HTTP ===
	mux := http.NewServeMux()
	mux.HandleFunc("GET /classify/{char}", handleClassify(svc))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", slog.Any("error", err))
	}
	svc.Terminate()
	return nil
}

func handleClassify(svc *classify.Service) http.HandlerFunc {
	type response struct {
		Char  int    `json:"char"`
		AlNum bool   `json:"alnum,omitempty"`
		Error string `json:"error,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		c, err := strconv.Atoi(r.PathValue("char"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(response{Error: "char must be an integer"})
			return
		}

		alnum, err := svc.Lookup(r.Context(), c)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, classify.ErrOutOfRange):
				status = http.StatusBadRequest
			case errors.Is(err, classify.ErrTerminated):
				status = http.StatusServiceUnavailable
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(response{Char: c, Error: err.Error()})
			return
		}

		_ = json.NewEncoder(w).Encode(response{Char: c, AlNum: alnum})
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
