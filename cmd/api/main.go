package main

import (
	"context"
	"log"

	"github.com/sngm3741/latex-free-eats/api/internal/config"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/storage"
	"github.com/sngm3741/latex-free-eats/api/internal/server"
)

func main() {
	cfg := config.Load()

	backend, err := storage.Open(context.Background(), cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("ストア初期化に失敗しました (driver=%s): %v", cfg.StoreDriver, err)
	}

	app := server.New(cfg, backend)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
