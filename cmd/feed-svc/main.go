package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"zentra/internal/feed"
	"zentra/internal/wire"
)

func main() {
	app, cleanup, err := wire.InitializeFeedApp()
	if err != nil {
		log.Fatalf("Failed to initialize feed service: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(loggingUnaryInterceptor(app.Logger)),
	)
	feed.RegisterFeedServiceServer(grpcServer, app.Handlers)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(feed.FeedServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	addr := net.JoinHostPort(app.Config.Server.Host, app.Config.Server.FeedGRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		app.Logger.Error("failed to listen", zap.String("addr", addr), zap.Error(err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("feed service running", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.Logger.Info("shutting down feed service")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		app.Logger.Error("feed service stopped with error", zap.Error(err))
		return
	}
	app.Logger.Info("feed service stopped")
}

func loggingUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{zap.String("method", info.FullMethod), zap.Duration("took", time.Since(start))}
		if err != nil {
			logger.Warn("rpc failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("rpc completed", fields...)
		}
		return resp, err
	}
}
