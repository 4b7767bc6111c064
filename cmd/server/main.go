// Package main provides the guardrail service:
// - Scheduled recommendation runs over every product config
// - HTTP API for on-demand evaluation, status and Prometheus metrics
// - Audit trail: recommendation log rows plus an execution record per run
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"ppc-guardrail-lab/internal/config"
	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/engine"
	"ppc-guardrail-lab/internal/observability"
	"ppc-guardrail-lab/internal/storage"
	chstore "ppc-guardrail-lab/internal/storage/clickhouse"
	"ppc-guardrail-lab/internal/storage/memory"
	"ppc-guardrail-lab/internal/storage/migrations"
	pgstore "ppc-guardrail-lab/internal/storage/postgres"
	redisstore "ppc-guardrail-lab/internal/storage/redis"
	"ppc-guardrail-lab/internal/tacos"
)

// Server holds all components of the guardrail service.
type Server struct {
	cfg    *config.Config
	stores *allStores
	engine *engine.Engine
	logger *log.Logger

	// State
	mu         sync.Mutex
	lastRun    time.Time
	runRunning bool
	runs       int
}

// allStores holds all storage implementations.
type allStores struct {
	configStore       storage.ProductConfigStore
	snapshotStore     storage.PerformanceSnapshotStore
	recommendationLog storage.RecommendationLogStore
	executionStore    storage.ExecutionStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage with sample fixtures")
	httpAddr := flag.String("http-addr", "", "HTTP listen address (overrides config)")
	outputDir := flag.String("output-dir", "", "Report output directory (overrides config)")
	runInterval := flag.Duration("run-interval", 0, "Recommendation run interval (overrides config)")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *useMemory {
		cfg.UseMemory = true
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *runInterval > 0 {
		cfg.RunInterval = *runInterval
	}

	if !cfg.UseMemory && (cfg.PostgresDSN == "" || cfg.ClickhouseDSN == "") {
		logger.Fatal("postgres_dsn and clickhouse_dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())

	stores, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	builder := tacos.NewContextBuilder()
	if cfg.Engine.TmaxCap > 0 {
		builder.TmaxCap = cfg.Engine.TmaxCap
	}
	if cfg.Engine.Epsilon > 0 {
		builder.Epsilon = cfg.Engine.Epsilon
	}

	server := &Server{
		cfg:    cfg,
		stores: stores,
		engine: engine.New(builder),
		logger: logger,
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	go server.startHTTPServer(cfg.HTTPAddr)

	err = server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, cfg *config.Config, logger *log.Logger) (*allStores, func(), error) {
	if cfg.UseMemory {
		stores := &allStores{
			configStore:       memory.NewProductConfigStore(),
			snapshotStore:     memory.NewPerformanceSnapshotStore(),
			recommendationLog: memory.NewRecommendationLogStore(),
			executionStore:    memory.NewExecutionStore(),
		}
		if err := engine.LoadFixtures(ctx, stores.configStore, stores.snapshotStore); err != nil {
			return nil, nil, fmt.Errorf("load fixtures: %w", err)
		}
		logger.Println("Using in-memory storage with sample fixtures")
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	// ClickHouse
	chConn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	var configStore storage.ProductConfigStore = pgstore.NewProductConfigStore(pool)
	if cfg.RedisAddr != "" {
		configStore = redisstore.NewConfigCache(configStore, cfg.RedisAddr)
		logger.Printf("Config cache enabled via redis at %s", cfg.RedisAddr)
	}

	stores := &allStores{
		configStore:       configStore,
		snapshotStore:     pgstore.NewPerformanceSnapshotStore(pool),
		recommendationLog: chstore.NewRecommendationLogStore(chConn),
		executionStore:    pgstore.NewExecutionStore(pool),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// Run starts the scheduled recommendation loop.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Printf("Starting run scheduler (interval: %v)...", s.cfg.RunInterval)

	// Run immediately on start
	s.runOnce(ctx)

	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce evaluates every product config, persists the audit trail and writes
// markdown reports.
func (s *Server) runOnce(ctx context.Context) {
	s.mu.Lock()
	if s.runRunning {
		s.mu.Unlock()
		s.logger.Println("Run already in progress, skipping...")
		return
	}
	s.runRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.runRunning = false
		s.lastRun = time.Now()
		s.runs++
		s.mu.Unlock()
	}()

	start := time.Now()
	runID := fmt.Sprintf("run-%s", start.UTC().Format("20060102-150405"))
	s.logger.Printf("Running recommendation batch %s...", runID)

	configs, err := s.stores.configStore.List(ctx)
	if err != nil {
		s.logger.Printf("Failed to list configs: %v", err)
		observability.RecordEvaluationError("list_configs")
		observability.RecordRun("failed", time.Since(start).Seconds())
		return
	}
	observability.DefaultMetrics.ConfigsLoaded.Set(float64(len(configs)))

	evaluated := 0
	errorCount := 0
	var rows []*domain.RecommendationRecord

	for _, cfg := range configs {
		rec, err := s.evaluateProduct(ctx, cfg)
		if err != nil {
			s.logger.Printf("Evaluation failed for %s: %v", cfg.ASIN, err)
			errorCount++
			continue
		}
		evaluated++
		rows = append(rows, engine.ToRecord(runID, rec))
		s.recordMetrics(rec)

		if err := s.applyPromotion(ctx, cfg.ASIN, rec); err != nil {
			s.logger.Printf("Failed to apply promotion updates for %s: %v", cfg.ASIN, err)
			observability.RecordEvaluationError("promotion_write")
			errorCount++
		}

		if err := s.writeReport(rec); err != nil {
			s.logger.Printf("Failed to write report for %s: %v", cfg.ASIN, err)
			errorCount++
		}
	}

	if len(rows) > 0 {
		if err := s.stores.recommendationLog.Append(ctx, rows); err != nil {
			s.logger.Printf("Failed to append recommendation log: %v", err)
			observability.RecordEvaluationError("recommendation_log")
			errorCount++
		}
	}

	status := domain.ExecutionStatusCompleted
	switch {
	case evaluated == 0 && errorCount > 0:
		status = domain.ExecutionStatusFailed
	case errorCount > 0:
		status = domain.ExecutionStatusPartial
	}

	execRec := &domain.ExecutionRecord{
		RunID:            runID,
		StartedAt:        start.UTC(),
		FinishedAt:       time.Now().UTC(),
		ConfigsEvaluated: evaluated,
		Errors:           errorCount,
		Status:           status,
	}
	if err := s.stores.executionStore.Insert(ctx, execRec); err != nil {
		s.logger.Printf("Failed to record execution: %v", err)
	}

	observability.RecordRun(strings.ToLower(status), time.Since(start).Seconds())
	if status != domain.ExecutionStatusFailed {
		observability.DefaultMetrics.LastSuccessfulRun.SetToCurrentTime()
	}

	s.logger.Printf("Batch %s finished in %v: %d evaluated, %d errors, status %s",
		runID, time.Since(start), evaluated, errorCount, status)
}

// evaluateProduct joins a config with its latest snapshot and runs the engine.
// A missing snapshot evaluates against zeroed live state rather than failing.
func (s *Server) evaluateProduct(ctx context.Context, cfg *domain.ProductConfig) (*engine.Recommendation, error) {
	in := engine.ProductInput{Config: cfg}

	snap, err := s.stores.snapshotStore.GetLatestByASIN(ctx, cfg.ASIN)
	switch {
	case err == nil:
		in.CurrentTacos = snap.CurrentTacos
		in.OrangeZoneMonths = snap.OrangeZoneMonths
		in.RedZoneMonths = snap.RedZoneMonths
		in.Growth = snap.Growth
		in.Competition = snap.Competition
		in.Performance = snap.Performance
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Printf("No snapshot for %s, evaluating from config only", cfg.ASIN)
	default:
		observability.RecordEvaluationError("snapshot_read")
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	rec, err := s.engine.Evaluate(in)
	if err != nil {
		observability.RecordEvaluationError("evaluate")
		return nil, err
	}
	return rec, nil
}

// applyPromotion writes the promotion config diff back, if the run produced one.
func (s *Server) applyPromotion(ctx context.Context, asin string, rec *engine.Recommendation) error {
	if rec.Promotion == nil {
		return nil
	}
	if rec.Promotion.Promoted {
		observability.RecordPromotion("")
	} else {
		observability.RecordPromotion("thresholds_not_met")
	}
	if rec.Promotion.ConfigUpdates == nil || rec.Promotion.ConfigUpdates.IsEmpty() {
		return nil
	}
	return s.stores.configStore.ApplyUpdates(ctx, asin, rec.Promotion.ConfigUpdates)
}

// writeReport renders the markdown report for one product.
func (s *Server) writeReport(rec *engine.Recommendation) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s.md", rec.ASIN))
	return os.WriteFile(path, []byte(engine.RenderMarkdown(rec)), 0644)
}

// recordMetrics emits per-recommendation observability counters.
func (s *Server) recordMetrics(rec *engine.Recommendation) {
	observability.RecordRecommendation(string(rec.Context.TacosZone), rec.Action.Stop)
	observability.RecordStateTransition(
		string(rec.Judgment.CurrentState), string(rec.Judgment.RecommendedState))
	for _, kw := range rec.Keywords {
		observability.RecordActionEmitted(string(kw.FinalAction))
		if kw.Downgraded {
			observability.RecordGuardrailFallback(string(kw.Role), string(kw.RequestedAction))
		}
	}
}

// startHTTPServer starts the HTTP server for health/metrics/status/evaluate.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/evaluate", s.handleEvaluate)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status     string    `json:"status"`
	LastRun    time.Time `json:"last_run,omitempty"`
	Runs       int       `json:"runs"`
	RunRunning bool      `json:"run_running"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:     "running",
		LastRun:    s.lastRun,
		Runs:       s.runs,
		RunRunning: s.runRunning,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// EvaluateRequest is the JSON body for POST /evaluate.
type EvaluateRequest struct {
	ASIN string `json:"asin"`
}

// handleEvaluate evaluates a single product on demand. The result is not
// persisted; batch runs own the audit trail.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ASIN == "" {
		http.Error(w, "asin is required", http.StatusBadRequest)
		return
	}

	cfg, err := s.stores.configStore.GetByASIN(r.Context(), req.ASIN)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "unknown asin", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Printf("Config read failed for %s: %v", req.ASIN, err)
		http.Error(w, "config read failed", http.StatusInternalServerError)
		return
	}

	rec, err := s.evaluateProduct(r.Context(), cfg)
	if err != nil {
		s.logger.Printf("Evaluation failed for %s: %v", req.ASIN, err)
		http.Error(w, "evaluation failed", http.StatusInternalServerError)
		return
	}
	s.recordMetrics(rec)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
