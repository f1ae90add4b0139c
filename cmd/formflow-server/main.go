// Command formflow-server serves the booking and contact flows over HTTP.
//
// It renders the embedded forms at /book and /contact, accepts their POST
// submissions, quotes fares at /api/estimate, and serves the bundled client
// assets under /assets/. Configuration comes from formflow-server.yaml,
// FORMFLOW_* environment variables, or flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/components/locations/formflowwiring"
	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML config file")
		addr       = flag.String("addr", "", "Listen address, overrides the configured one")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "formflow-server ", log.LstdFlags)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	estimator, err := buildEstimator(cfg.FareTable)
	if err != nil {
		logger.Fatalf("fare table: %v", err)
	}

	generator, err := buildGenerator(cfg, estimator)
	if err != nil {
		logger.Fatalf("generator: %v", err)
	}

	server := &formServer{
		generator: generator,
		estimator: estimator,
		logger:    logger,
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handlers.LoggingHandler(os.Stdout, cors(server.routes())),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Fatalf("server: %v", err)
	case <-ctx.Done():
		logger.Println("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

// buildEstimator loads the fare table from disk when configured, falling back
// to the built-in pricing.
func buildEstimator(path string) (*fare.Estimator, error) {
	if path == "" {
		return fare.MustNew(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	table, err := fare.ParseTable(data, path)
	if err != nil {
		return nil, err
	}
	return fare.New(fare.WithTable(table))
}

// buildGenerator assembles the orchestrator, layering the configured
// estimator, reset delay, and template overrides on top of the defaults. The
// pickup and drop-off inputs get pointed at the location suggestion endpoint
// the server mounts.
func buildGenerator(cfg Config, estimator *fare.Estimator) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithEstimator(estimator, formflow.ServiceField),
		orchestrator.WithUIDecorators(formflowwiring.SuggestionsDecorator(
			formflow.FlowBooking, "", []string{"pickup", "dropoff"})),
	}

	if cfg.ResetDelay > 0 && cfg.ResetDelay != formflow.DefaultResetDelay {
		options = append(options, orchestrator.WithFlowOptions(formflow.FlowContact,
			flow.WithResetDelay(cfg.ResetDelay)))
	}

	if cfg.TemplatesDir != "" {
		renderer, err := html.New(html.WithTemplatesDir(cfg.TemplatesDir))
		if err != nil {
			return nil, fmt.Errorf("templates %s: %w", cfg.TemplatesDir, err)
		}
		registry := render.NewRegistry()
		registry.MustRegister(renderer)
		options = append(options, orchestrator.WithRegistry(registry))
	}

	return formflow.New(options...), nil
}
