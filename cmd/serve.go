package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEstimator(cfg.Estimator.EnableAll)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(env *estimatorEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/plugins", handleListPlugins(env))
	r.Get("/plugins/{id}", handleGetPlugin(env))
	r.Post("/plugins/{id}/enable", handleEnable(env))
	r.Post("/plugins/{id}/disable", handleDisable(env))
	r.Post("/plugins/{id}/analyze", handleAnalyze(env))
	r.Post("/analyze_all", handleAnalyzeAll(env))

	return r
}

// requestID stamps every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// pluginView is the wire shape for plugin listings: metadata plus the
// current enablement state.
type pluginView struct {
	model.PluginMetadata
	Enabled bool `json:"enabled"`
}

func handleListPlugins(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		enabledOnly := r.URL.Query().Get("enabled_only") == "true"

		if category != "" && !model.Category(category).Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
			return
		}

		out := make([]pluginView, 0)
		for _, meta := range env.Manager.List() {
			enabled := env.Manager.Enabled(meta.ID)
			if enabledOnly && !enabled {
				continue
			}
			if category != "" && meta.Category != model.Category(category) {
				continue
			}
			out = append(out, pluginView{PluginMetadata: meta, Enabled: enabled})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleGetPlugin(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		p, ok := env.Manager.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("plugin %q not found", id))
			return
		}
		writeJSON(w, http.StatusOK, pluginView{
			PluginMetadata: p.Metadata(),
			Enabled:        env.Manager.Enabled(id),
		})
	}
}

func handleEnable(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := env.Manager.Enable(id); err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("plugin %q not found", id))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "enabled", "plugin": id})
	}
}

func handleDisable(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		env.Manager.Disable(id)
		writeJSON(w, http.StatusOK, map[string]string{"status": "disabled", "plugin": id})
	}
}

func handleAnalyze(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req model.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := env.Manager.RunAnalysis(r.Context(), req.Text, id, req.Context)
		if err != nil {
			switch {
			case eris.Is(err, plugin.ErrNotFound):
				writeError(w, http.StatusNotFound, fmt.Sprintf("plugin %q not found", id))
			case eris.Is(err, plugin.ErrNotEnabled):
				writeError(w, http.StatusBadRequest, fmt.Sprintf("plugin %q is not enabled", id))
			case eris.Is(err, plugin.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "invalid input text for analysis")
			default:
				zap.L().Error("analysis failed", zap.String("plugin", id), zap.Error(err))
				writeError(w, http.StatusBadGateway, "analysis failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func handleAnalyzeAll(env *estimatorEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		results := env.Manager.RunAllEnabled(r.Context(), req.Text, req.Context)
		writeJSON(w, http.StatusOK, results)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
