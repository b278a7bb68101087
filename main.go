package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cloudspace-consulting/survey-api/app"
	"github.com/cloudspace-consulting/survey-api/config"
	"github.com/cloudspace-consulting/survey-api/log"
	"github.com/cloudspace-consulting/survey-api/routes"
	"github.com/cloudspace-consulting/survey-api/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal("main.store.open:", err)
	}
	defer db.Close(context.Background())

	app := app.App{
		Store:  db,
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
