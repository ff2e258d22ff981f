package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	appcfg "github.com/cardtable/kings-corner/internal/config"
	"github.com/cardtable/kings-corner/internal/httpapi"
	"github.com/cardtable/kings-corner/internal/invite"
	"github.com/cardtable/kings-corner/internal/msgcat"
	"github.com/cardtable/kings-corner/internal/obslog"
	"github.com/cardtable/kings-corner/internal/session"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		log.Fatalf("message catalog init error: %v", err)
	}

	mgr := session.NewManager(session.Config{
		SessionTimeout: cfg.SessionTimeout,
		MaxGames:       cfg.MaxConcurrentGames,
	}, cat, logger)

	// Result persistence is optional
	var repo *session.PostgresRepository
	if cfg.DatabaseURL != "" {
		repo, err = session.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("repository init error: %v", err)
		}
		mgr.AttachRepository(repo)
	}

	// Invite codes are optional and need Redis
	var invites *invite.Directory
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		invites = invite.NewDirectory(redis.NewClient(opts), cfg.SessionTimeout)
	}

	api := httpapi.NewServer(mgr, invites, logger)
	srv := &fasthttp.Server{
		Handler: api.Handler,
		Name:    "kings-corner",
	}

	go func() {
		logger.Info("server_listen", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	_ = srv.Shutdown()
	if repo != nil {
		_ = repo.Close()
	}
	_ = logger.Sync()
}
