package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/viralforge/sigpac-weather/internal/adapters/cache"
	eventadapter "github.com/viralforge/sigpac-weather/internal/adapters/events"
	grpcadapter "github.com/viralforge/sigpac-weather/internal/adapters/grpc"
	httpadapter "github.com/viralforge/sigpac-weather/internal/adapters/http"
	"github.com/viralforge/sigpac-weather/internal/adapters/memory"
	mongoadapter "github.com/viralforge/sigpac-weather/internal/adapters/mongo"
	"github.com/viralforge/sigpac-weather/internal/adapters/postgres"
	"github.com/viralforge/sigpac-weather/internal/adapters/security"
	"github.com/viralforge/sigpac-weather/internal/adapters/weather"
	"github.com/viralforge/sigpac-weather/internal/application"
	"github.com/viralforge/sigpac-weather/internal/ports"
	"github.com/viralforge/sigpac-weather/internal/telemetry"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	background []func(context.Context)
	cleanups   []func(context.Context)
}

type storage struct {
	accounts ports.AccountRepository
	parcels  ports.ParcelRepository
	health   ports.HealthChecker
	close    func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping sigpac weather service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"storage_backend", cfg.StorageBackend,
	)

	rt := &Runtime{cfg: cfg, logger: logger}
	ok := false
	defer func() {
		if !ok {
			rt.cleanup(context.Background())
		}
	}()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceID, cfg.OTLPEndpoint, cfg.OTLPInsecure)
	if err != nil {
		return nil, err
	}
	rt.addCleanup(func(ctx context.Context) { _ = shutdownTracing(ctx) })

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.addCleanup(store.close)

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("using ephemeral JWT secret for local/dev runtime")
		secret, err = ephemeralSecret()
		if err != nil {
			return nil, err
		}
	}
	tokenSigner, err := security.NewHMACSigner(secret, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("init jwt signer: %w", err)
	}

	var (
		revocations ports.TokenRevocationStore
		rainfall    ports.RainfallProvider = weather.NewSimulatedProvider()
	)
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rt.addCleanup(func(context.Context) { _ = redisClient.Close() })
		revocations = cacheadapter.NewRedisRevocationStore(redisClient)
		rainfall = cacheadapter.NewCachedRainfallProvider(redisClient, rainfall)
	} else {
		local := memory.NewRevocationStore()
		revocations = local
		rt.background = append(rt.background, func(ctx context.Context) {
			local.RunSweeper(ctx, cfg.RevocationSweepInterval)
		})
	}

	var publisher ports.EventPublisher = eventadapter.NewLoggingPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopics)
		if err != nil {
			return nil, fmt.Errorf("init kafka publisher: %w", err)
		}
		rt.addCleanup(func(context.Context) { _ = kafkaPublisher.Close() })
		publisher = kafkaPublisher
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			TokenTTL:          cfg.TokenTTL,
			MunicipalityLimit: cfg.MunicipalityLimit,
		},
		Accounts:     store.accounts,
		Parcels:      store.parcels,
		Revocations:  revocations,
		Hasher:       security.NewBcryptHasher(cfg.BcryptCost),
		TokenSigner:  tokenSigner,
		Publisher:    publisher,
		Rainfall:     rainfall,
		Catalog:      weather.NewStaticCatalog(),
		Geocoder:     weather.NewPlaceholderGeocoder(),
		StorageCheck: store.health,
	})

	router := httpadapter.NewRouter(httpadapter.NewHandler(svc), cfg.CORSOrigins)
	rt.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           otelhttp.NewHandler(router, cfg.ServiceID),
		ReadHeaderTimeout: 5 * time.Second,
	}

	rt.grpcServer = grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(rt.grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcadapter.Register(rt.grpcServer, grpcadapter.NewTokenServer(svc))

	rt.grpcLis, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	ok = true
	return rt, nil
}

func openStorage(ctx context.Context, cfg Config) (storage, error) {
	switch cfg.StorageBackend {
	case BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return storage{}, fmt.Errorf("connect postgres: %w", err)
		}
		repos := postgres.NewRepositories(db)
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = repos.Close()
			return storage{}, fmt.Errorf("run migrations: %w", err)
		}
		return storage{
			accounts: repos.Accounts,
			parcels:  repos.Parcels,
			health:   repos,
			close:    func(context.Context) { _ = repos.Close() },
		}, nil
	case BackendMongo:
		store, err := mongoadapter.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return storage{}, err
		}
		return storage{
			accounts: store.Accounts,
			parcels:  store.Parcels,
			health:   store,
			close:    func(ctx context.Context) { _ = store.Close(ctx) },
		}, nil
	default:
		parcels := memory.NewParcelRepository()
		return storage{
			accounts: memory.NewAccountRepository(),
			parcels:  parcels,
			health:   parcels,
			close:    func(context.Context) {},
		}, nil
	}
}

func ephemeralSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (r *Runtime) addCleanup(fn func(context.Context)) {
	r.cleanups = append(r.cleanups, fn)
}

// cleanup releases resources in reverse acquisition order.
func (r *Runtime) cleanup(ctx context.Context) {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i](ctx)
	}
	r.cleanups = nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, task := range r.background {
		go task(ctx)
	}

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case runErr = <-errCh:
		r.logger.Error("server failure", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanup(shutdownCtx)
	return runErr
}
