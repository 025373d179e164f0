package grpcserver

import (
	"context"
	"fmt"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// CatalogService is the health service name that follows the catalog backend.
const CatalogService = "marineiq.catalog"

// Checker is probed to drive the catalog serving status.
type Checker interface {
	Check(ctx context.Context) error
}

// Server is the ops listener: gRPC health and reflection, nothing else.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	checker    Checker
	logger     *zap.Logger
}

func New(address string, checker Checker, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	grpc_prometheus.EnableHandlingTimeHistogram()
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.ChainStreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(CatalogService, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)
	grpc_prometheus.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     healthSrv,
		listener:   lis,
		checker:    checker,
		logger:     logger,
	}, nil
}

// Serve blocks until the server stops.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Probe updates the catalog serving status once.
func (s *Server) Probe(ctx context.Context) {
	if s.checker == nil {
		return
	}
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.checker.Check(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("catalog health check failed", zap.Error(err))
	}
	s.health.SetServingStatus(CatalogService, status)
}

// Watch probes every interval until ctx is done.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Shutdown attempts a graceful shutdown, falling back to Stop after ctx expires.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-ctx.Done():
		s.grpcServer.Stop()
		<-stopped
	case <-stopped:
	}
}

// Address exposes the bound listener address (useful for tests).
func (s *Server) Address() string { return s.listener.Addr().String() }
