package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aicore "github.com/truthlenz/truthlenz/src/ai/core"
	_ "github.com/truthlenz/truthlenz/src/ai/providers"
	"github.com/truthlenz/truthlenz/src/verifier/config"
	"github.com/truthlenz/truthlenz/src/verifier/data"
	"github.com/truthlenz/truthlenz/src/verifier/engine"
	"github.com/truthlenz/truthlenz/src/verifier/webserver"
)

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	rdb := data.MustRedis(cfg.RedisURL)

	gateway, err := aicore.NewGateway(aicore.FactoryConfig{
		GeminiKey: cfg.GeminiKey,
		OpenAIKey: cfg.OpenAIKey,
		Timeout:   cfg.ModelTimeout,
	}, cfg.ModelTimeout, cfg.TextChain, cfg.MediaChain, cfg.SecondaryChain, cfg.FeedbackChain)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	cache := data.NewCacheStore(db, rdb)
	feedback := data.NewFeedbackStore(db)
	eng := engine.New(gateway, cache, feedback, rdb, engine.Chains{
		Text:      cfg.TextChain,
		Media:     cfg.MediaChain,
		Secondary: cfg.SecondaryChain,
		Feedback:  cfg.FeedbackChain,
	})

	router := webserver.New(cfg, eng, feedback, db, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("TruthLenz verifier listening on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
