package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"gallerydb/pkg/api"
	"gallerydb/pkg/banner"
	"gallerydb/pkg/config"
	"gallerydb/pkg/logger"
	"gallerydb/pkg/security"
	"gallerydb/pkg/shutdown"
	"gallerydb/pkg/store"
)

// build metadata - set via ldflags during build/release
var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load(".env")
	addrVal, dataVal, cfgVal, setFlags := config.ParseCommandFlags()

	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])
	cfg, envUsed, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Logging.Level)

	// Flags explicitly set win over env/config.
	addr := addrVal
	if !setFlags["addr"] {
		addr = cfg.Addr()
	}
	dataDir := dataVal
	if !setFlags["data"] && cfg.Storage.DataDir != "" {
		dataDir = cfg.Storage.DataDir
	}

	if err := store.Open(dataDir); err != nil {
		log.Fatalf("failed to open stores at %s: %v", dataDir, err)
	}
	defer func() { _ = store.Close() }()

	config.SetRuntime(&config.RuntimeConfig{AdminToken: cfg.Admin.Token})

	srcs := []string{}
	if len(setFlags) > 0 {
		srcs = append(srcs, "flags")
	}
	if envUsed {
		srcs = append(srcs, "env")
	}
	if _, err := config.Load(cfgPath); err == nil {
		srcs = append(srcs, "config")
	}
	verStr := version
	if commit != "none" {
		verStr = verStr + " (" + commit + ")"
	}
	banner.Print(addr, dataDir, strings.Join(srcs, ", "), verStr, cfg.Admin.Token != "")

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	mux.Handle("/openapi.yaml", http.FileServer(http.Dir("./docs")))

	var handler http.Handler = mux
	handler = security.RequestLogMiddleware(handler)
	handler = security.RateLimitMiddleware(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst)(handler)

	// The gallery is consumed cross-origin by browser clients; default to
	// permissive CORS, narrowed only when origins are configured.
	if len(cfg.Security.CORS.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.Security.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Admin-Token"},
		}).Handler(handler)
	} else {
		handler = cors.AllowAll().Handler(handler)
	}

	srv := &http.Server{Addr: addr, Handler: handler}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()
	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error("shutdown_failed", "error", err)
		}
	}()

	logger.Info("server_listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	logger.Info("server_stopped")
}
