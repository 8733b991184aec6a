package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	server "luxe_haven/internal/adapters/http_server"
	"luxe_haven/internal/adapters/observability"
	redisad "luxe_haven/internal/adapters/redis"
	"luxe_haven/internal/device"
	"luxe_haven/internal/domain"
	"luxe_haven/internal/session"
	"luxe_haven/internal/shared"
	mysqlstore "luxe_haven/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	deviceID := cfg.DeviceID
	if deviceID == "" {
		if h, err := os.Hostname(); err == nil && h != "" {
			deviceID = h
		} else {
			deviceID = uuid.NewString()
		}
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, deviceID)
	if cfg.DeviceID == "" {
		log.Warn().Str("device", deviceID).Msg("DEVICE_ID not set, using fallback")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// stores: the staged booking always lives in redis with a TTL
	rdb := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "frontdesk:"+deviceID)
	if err := rdb.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	defer rdb.Close()
	transient := rdb.Scoped("session").Named("session")

	var durable domain.KV = rdb.Scoped("local").Named("local")
	if cfg.StoreDriver == "mysql" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		ms := mysqlstore.New(db, deviceID)
		if err := ms.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("client_storage migration failed")
		}
		go purgeExpired(ctx, ms)
		durable = ms
		log.Info().Msg("durable store: mysql")
	}

	dev, err := device.New(ctx, device.Options{
		APIBase:        cfg.APIBase,
		APIRPS:         cfg.APIRPS,
		APITimeout:     cfg.APITimeout,
		SessionTTL:     cfg.SessionTTL,
		PreloadWorkers: cfg.PreloadWorkers,
		HotelName:      cfg.HotelName,
		Durable:        durable,
		Transient:      transient,
		Logger:         log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize device")
	}
	go watchSession(ctx, dev.Session)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(dev.Handlers)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		dev.Close()
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.APIBase).Msg("front desk listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("front desk stopped")
}

// watchSession logs sign-ins, sign-outs and token expiry.
func watchSession(ctx context.Context, s *session.Session) {
	ch, cancel := s.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-ch:
			ev := log.Info().Bool("authenticated", snap.Authenticated)
			if snap.User != nil {
				ev = ev.Str("user", snap.User.Identifier()).Str("role", string(snap.User.EffectiveRole()))
			}
			if exp, ok := s.TokenExpiry(); ok {
				ev = ev.Time("token_expires", exp)
			}
			ev.Msg("session changed")
		}
	}
}

func purgeExpired(ctx context.Context, s *mysqlstore.Store) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge client_storage")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("purged expired client_storage rows")
			}
		}
	}
}
