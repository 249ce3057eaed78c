package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"cruze/app"
	"cruze/cmd/api/auth"
	"cruze/cmd/api/router"
	"cruze/config"
	"cruze/db"
	"cruze/gateway"
	"cruze/internal/logger"
	"cruze/llm"
	"cruze/repositories"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal(err)
	}

	provider, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatal(err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	gw := gateway.NewMongo(repositories.NewChatRepository(db.Database()))
	mgr := app.NewManager(gw, provider)

	r := router.New(mgr, jwtManager)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	logger.InfoWithFields("api server starting", logger.Fields{"addr": cfg.Server.Addr})
	if err := http.ListenAndServe(cfg.Server.Addr, corsHandler.Handler(r)); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
