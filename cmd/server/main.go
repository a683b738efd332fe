package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/db"
	selaGrpc "liyu1981.xyz/sela-weight-tracker/pkg/grpc"
	selaHttp "liyu1981.xyz/sela-weight-tracker/pkg/http"
	"liyu1981.xyz/sela-weight-tracker/pkg/metrics"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, copy .env.example to .env first if in development")
	}

	rootCmd := &cobra.Command{
		Use:   "sela-server",
		Short: "Weight monitoring for patients under cancer treatment",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDatabase() (*db.DB, error) {
	selaDbType := os.Getenv(common.EnvKeySelaDBType)
	switch selaDbType {
	case "", "file":
		return db.Open(db.UseSqliteDialector())
	case "memory":
		return db.Open(db.UseMemorySqliteDialector())
	default:
		return nil, fmt.Errorf("unknown %s: %s", common.EnvKeySelaDBType, selaDbType)
	}
}

func newTracker(ctx context.Context, m *metrics.Metrics) (*tracker.Tracker, error) {
	dbInstance, err := openDatabase()
	if err != nil {
		return nil, err
	}

	selaCore := (&tracker.Tracker{
		Db:      *dbInstance,
		Clock:   clock.SystemClock{},
		Metrics: m,
		Options: tracker.Options{
			AlertOnUpdate: common.EnvBool(common.EnvKeySelaAlertOnUpdate),
		},
	}).WithDefaultServices()

	if err := selaCore.Settings.EnsureDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return selaCore, nil
}

func limiterDefaults() (float64, int, error) {
	defaultRate, err := strconv.ParseFloat(os.Getenv(common.EnvKeySelaDefaultRate), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s, or not set in .env, should be a float64 value", common.EnvKeySelaDefaultRate)
	}
	defaultBurst, err := strconv.ParseInt(os.Getenv(common.EnvKeySelaDefaultBurst), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s, or not set in .env, should be an int value", common.EnvKeySelaDefaultBurst)
	}
	return defaultRate, int(defaultBurst), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := common.GetLoggerWith(common.LoggerNameCli)

	defaultRate, defaultBurst, err := limiterDefaults()
	if err != nil {
		return err
	}

	selaMetrics := metrics.New("sela")
	selaCore, err := newTracker(ctx, selaMetrics)
	if err != nil {
		return err
	}

	grpcHostPort := strings.TrimSpace(os.Getenv(common.EnvKeySelaGrpcHostPort))
	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeySelaHttpHostPort))

	var grpcServer *grpc.Server
	if grpcHostPort != "" {
		selaGrpcServer := selaGrpc.WeightTrackerGrpcServer{
			Tracker:          selaCore,
			RateLimiterStore: tracker.NewRateLimiterStore(rate.Limit(defaultRate), defaultBurst),
		}
		interceptor := selaGrpcServer.CreateRateLimitInterceptor([]string{selaGrpc.MethodRecordWeight})
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		selaGrpc.RegisterWeightTrackerServer(grpcServer, &selaGrpcServer)
		logger.Info("gRPC server created with:",
			zap.String("default_limiter",
				fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

		listener, err := net.Listen("tcp", grpcHostPort)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		go func() {
			logger.Info("Starting gRPC server on: " + grpcHostPort)
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error("grpc server failed to serve", zap.Error(err))
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &selaHttp.RestfulServer{
		Server:           gin.Default(),
		Tracker:          selaCore,
		RateLimiterStore: tracker.NewRateLimiterStore(rate.Limit(defaultRate), defaultBurst),
		Metrics:          selaMetrics,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	httpServer := &http.Server{Addr: httpHostPort, Handler: rs.Server}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server on: " + httpHostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed to serve: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	return httpServer.Shutdown(shutdownCtx)
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write a full backup snapshot as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			selaCore, err := newTracker(ctx, nil)
			if err != nil {
				return err
			}

			snapshot, err := selaCore.Backup.Export(ctx)
			if err != nil {
				return err
			}

			raw, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], raw, 0o600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d patients, %d treatments, %d weight records, %d interventions to %s\n",
				len(snapshot.Patients), len(snapshot.Treatments), len(snapshot.WeightRecords), len(snapshot.Interventions), args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snapshot models.Snapshot
			if err := json.Unmarshal(raw, &snapshot); err != nil {
				return fmt.Errorf("%s is not a snapshot: %w", args[0], err)
			}

			selaCore, err := newTracker(ctx, nil)
			if err != nil {
				return err
			}
			if err := selaCore.Backup.Import(ctx, &snapshot); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d patients, %d treatments, %d weight records, %d interventions from %s\n",
				len(snapshot.Patients), len(snapshot.Treatments), len(snapshot.WeightRecords), len(snapshot.Interventions), args[0])
			return nil
		},
	}
}
