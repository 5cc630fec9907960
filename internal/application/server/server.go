// Package server wires the provisioning form, its buses and the optional
// gRPC health endpoint into one process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"provpush/internal/application/command"
	"provpush/internal/application/config"
	"provpush/internal/application/query"
	"provpush/internal/domain/model"
	"provpush/internal/domain/service/filename"
	"provpush/internal/infra/catalog"
	"provpush/internal/infra/sftp"
	"provpush/internal/infra/web"
	"provpush/pkg/cqrs"
	log "provpush/pkg/log"
	"provpush/pkg/metrics"
)

// Server represents the running application.
type Server struct {
	config     *config.Config
	commandBus *cqrs.DefaultCommandBus
	queryBus   *cqrs.DefaultQueryBus
	httpServer *http.Server
	httpLis    net.Listener
	grpcServer *grpc.Server
	grpcLis    net.Listener
	health     *health.Server
}

// New loads the catalog, registers handlers and binds the listeners. Both
// buses shut down once ctx is cancelled.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	start := time.Now()

	location, err := time.LoadLocation(model.PushTimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", model.PushTimeZone, err)
	}

	catalogRepository, err := catalog.Load(cfg.AppsFile)
	if err != nil {
		return nil, err
	}

	workDir := cfg.GetWorkDir()
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare work directory %s: %w", workDir, err)
	}

	hostKeyCallback, err := sftp.HostKeyCallback(cfg.SFTPKnownHosts)
	if err != nil {
		return nil, err
	}
	uploader := sftp.NewUploader(cfg.GetUploadTarget(), sftp.Options{
		Timeout:         cfg.SFTPTimeout,
		Passphrase:      cfg.SFTPPassphrase,
		HostKeyCallback: hostKeyCallback,
	})

	commandBus := cqrs.NewCommandBus(ctx)
	if err := command.RegisterCommandHandlers(commandBus, filename.NewAllocator(workDir), uploader, location); err != nil {
		return nil, err
	}

	queryBus := cqrs.NewQueryBus(ctx)
	if err := query.RegisterQueryHandlers(queryBus, catalogRepository); err != nil {
		return nil, err
	}

	pushed := metrics.NewCounter("pushes_succeeded_total")
	failed := metrics.NewCounter("pushes_failed_total")
	handler := web.NewHandler(web.Dependencies{
		Commands: commandBus,
		Queries:  queryBus,
		Store:    web.NewCookieStore(cfg.SecretKey),
		Location: location,
		Metrics:  metrics.NewMetricsFactory(start, pushed, failed),
		Pushed:   pushed,
		Failed:   failed,
	})

	s := &Server{
		config:     cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		httpServer: &http.Server{
			Handler:           web.NewRouter(handler),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	s.httpLis, err = net.Listen("tcp", cfg.GetListenAddress())
	if err != nil {
		return nil, fmt.Errorf("listen http: %w", err)
	}

	if addr := cfg.GetGRPCHealthAddress(); addr != "" {
		s.grpcLis, err = net.Listen("tcp", addr)
		if err != nil {
			_ = s.httpLis.Close()
			return nil, fmt.Errorf("listen gRPC health: %w", err)
		}
		s.grpcServer = grpc.NewServer()
		s.health = health.NewServer()
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	}

	return s, nil
}

// Addr returns the bound HTTP address.
func (s *Server) Addr() string {
	return s.httpLis.Addr().String()
}

// GRPCAddr returns the bound gRPC health address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s.grpcLis == nil {
		return ""
	}
	return s.grpcLis.Addr().String()
}

// Run serves until ctx is cancelled or a listener fails, then shuts down:
// health goes NOT_SERVING, the buses stop accepting work, in-flight HTTP
// requests and commands are drained and the gRPC server stops.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		log.Info("HTTP server started", "addr", s.Addr())
		if err := s.httpServer.Serve(s.httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	if s.grpcServer != nil {
		go func() {
			log.Info("gRPC health server started", "addr", s.GRPCAddr())
			if err := s.grpcServer.Serve(s.grpcLis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case runErr = <-errCh:
		log.Error("Server failure", "error", runErr)
	}

	if s.health != nil {
		s.health.Shutdown()
	}
	s.commandBus.Shutdown()
	s.queryBus.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown incomplete", "error", err)
	}

	s.commandBus.WaitForCompletion()
	s.queryBus.WaitForCompletion()
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}

	log.Info("Server stopped")
	return runErr
}
