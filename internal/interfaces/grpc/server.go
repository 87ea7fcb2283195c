// Package grpc provides the gRPC process surface: the standard health
// service for orchestrator probes, server reflection in debug builds, and
// the interceptor chain. The engine exposes no domain RPCs; HTTP and Kafka
// are the data planes.
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/turtacn/ChemDesc-Engine/internal/config"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

const defaultGracefulTimeout = 10 * time.Second

// Server wraps the gRPC listener with health reporting and graceful stop.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	listener     net.Listener
	logger       logging.Logger
	metrics      *prometheus.AppMetrics
}

// NewServer binds the configured address and registers the health service.
// Reflection is registered only in debug mode.
func NewServer(cfg config.GRPCConfig, appCfg config.AppConfig, logger logging.Logger, metrics *prometheus.AppMetrics) (*Server, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.Named("grpc")

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to bind grpc listener").
			WithDetail("addr=" + addr)
	}

	s := &Server{
		listener:     listener,
		logger:       logger,
		metrics:      metrics,
		healthServer: health.NewServer(),
	}
	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.loggingInterceptor,
		s.metricsInterceptor,
	))

	healthpb.RegisterHealthServer(s.grpcServer, s.healthServer)
	if appCfg.Debug {
		reflection.Register(s.grpcServer)
	}
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// SetServing flips the named service's health status.
func (s *Server) SetServing(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.healthServer.SetServingStatus(service, st)
}

// Start serves until Stop is called. It blocks.
func (s *Server) Start() error {
	s.logger.Info("grpc server listening", logging.String("addr", s.Addr()))
	s.SetServing("", true)
	if err := s.grpcServer.Serve(s.listener); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "grpc server failed")
	}
	return nil
}

// Stop drains in-flight RPCs, falling back to a hard stop after the
// graceful timeout.
func (s *Server) Stop(ctx context.Context) {
	s.SetServing("", false)
	s.healthServer.Shutdown()

	timeout := defaultGracefulTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("grpc server stopped")
	case <-time.After(timeout):
		s.logger.Warn("graceful stop timed out, forcing")
		s.grpcServer.Stop()
	}
}

func (s *Server) recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("rpc panicked",
				logging.Any("panic", r),
				logging.String("method", info.FullMethod),
				logging.String("stack", string(debug.Stack())))
			if s.metrics != nil {
				s.metrics.RecordError("grpc", string(errors.ErrCodeInternal))
			}
			err = status.Error(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

func (s *Server) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if isHealthMethod(info.FullMethod) {
		return handler(ctx, req)
	}
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info("rpc served",
		logging.String("method", info.FullMethod),
		logging.String("code", status.Code(err).String()),
		logging.Duration("elapsed", time.Since(start)))
	return resp, err
}

func (s *Server) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.metrics == nil {
		return handler(ctx, req)
	}
	resp, err := handler(ctx, req)
	if err != nil {
		s.metrics.RecordError("grpc", status.Code(err).String())
	}
	return resp, err
}

func isHealthMethod(method string) bool {
	return strings.HasPrefix(method, "/grpc.health.v1.Health/")
}
