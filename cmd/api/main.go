package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dealscout/backend-go/internal/config"
	internalhttp "dealscout/backend-go/internal/http"
	"dealscout/backend-go/internal/services"
)

func main() {
	_ = godotenv.Load(
		".env",
		".env.local",
		"../.env",
		"../.env.local",
	)
	cfg := config.Load()
	if strings.EqualFold(cfg.LogLevel, "debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	cache := services.NewCache(cfg)

	client, err := services.NewDealScoutClient(cfg, cache)
	if err != nil {
		log.Fatalf("failed to initialize dealscout client: %v", err)
	}

	h := internalhttp.NewRouter(cfg, cache, client)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("dealscout backend listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
