package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"noticebase/internal/auth/credentials"
	authhandler "noticebase/internal/auth/handler"
	authservice "noticebase/internal/auth/service"
	"noticebase/internal/auth/store/revocation"
	httpapi "noticebase/internal/http"
	jwttoken "noticebase/internal/jwt_token"
	"noticebase/internal/platform/config"
	"noticebase/internal/platform/httpserver"
	"noticebase/internal/platform/logger"
	"noticebase/internal/platform/metrics"
	"noticebase/internal/platform/middleware"
	redisclient "noticebase/internal/platform/redis"
	recordshandler "noticebase/internal/records/handler"
	recordsservice "noticebase/internal/records/service"
	recordsstore "noticebase/internal/records/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = openPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("using postgres record store")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory record store")
	}

	var recordsTx recordsservice.RecordsTx
	if db != nil {
		recordsTx = newRecordsPostgresTx(db)
	} else {
		recordsTx = recordsservice.NewInMemoryTx(recordsstore.NewInMemory())
	}
	records := recordsservice.New(recordsTx,
		recordsservice.WithLogger(log),
		recordsservice.WithMetrics(m),
	)

	creds, err := buildCredentials(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	trl, err := buildRevocationList(ctx, cfg, db, m, log, g)
	if err != nil {
		return err
	}

	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	auth := authservice.New(creds, trl, jwt,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithTokenTTL(cfg.TokenTTL),
	)

	router := httpapi.NewRouter(httpapi.Dependencies{
		Logger:      log,
		Records:     recordshandler.New(records, log),
		Auth:        authhandler.New(auth, log),
		RequireAuth: middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), trl, log),
		Metrics:     promhttp.Handler(),
	})
	srv := httpserver.New(cfg.Addr, router)

	g.Go(func() error {
		return httpserver.Run(ctx, srv, cfg.ShutdownTimeout, log)
	})
	return g.Wait()
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, recordsstore.Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// buildCredentials loads OFFICER_CREDENTIALS into the credential store. With
// a database the pairs are upserted and earlier rows stay usable.
func buildCredentials(ctx context.Context, cfg config.Server, db *sql.DB, log *slog.Logger) (authservice.CredentialStore, error) {
	hashes, err := credentials.Parse(cfg.OfficerCredentials)
	if err != nil {
		return nil, fmt.Errorf("OFFICER_CREDENTIALS: %w", err)
	}
	if len(hashes) == 0 {
		log.Warn("OFFICER_CREDENTIALS is empty, only stored officers can log in")
	}
	if db == nil {
		return credentials.NewInMemory(hashes), nil
	}
	store := credentials.NewPostgres(db)
	for user, hash := range hashes {
		if err := store.Upsert(ctx, user, hash); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func buildRevocationList(ctx context.Context, cfg config.Server, db *sql.DB, m *metrics.Metrics, log *slog.Logger, g *errgroup.Group) (revocation.List, error) {
	switch cfg.Revocation {
	case config.RevocationRedis:
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			<-ctx.Done()
			return client.Close()
		})
		log.Info("using redis token revocation list")
		return revocation.NewRedisTRL(client.Client, revocation.WithRedisLatency(m.RevocationCheckDuration)), nil
	case config.RevocationPostgres:
		trl := revocation.NewPostgresTRL(db, revocation.WithPostgresLatency(m.RevocationCheckDuration))
		g.Go(func() error {
			purgeRevocations(ctx, trl, cfg.RevocationPurge, log)
			return nil
		})
		log.Info("using postgres token revocation list")
		return trl, nil
	default:
		return revocation.NewInMemoryTRL(), nil
	}
}

func purgeRevocations(ctx context.Context, trl *revocation.PostgresTRL, every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := trl.PurgeExpired(ctx)
			if err != nil {
				log.Warn("failed to purge expired revocations", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("purged expired revocations", "count", n)
			}
		}
	}
}
