package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/latex-free-eats/api/internal/config"
	mongodoc "github.com/sngm3741/latex-free-eats/api/internal/infrastructure/mongo"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/postgres"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/sqlite"
	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
)

// Backend は選択されたストアのリポジトリと後始末処理をまとめたもの。
type Backend struct {
	Driver      string
	Submissions application.SubmissionRepository
	closeFn     func(context.Context) error
}

// Close は接続を解放する。
func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.closeFn == nil {
		return nil
	}
	return b.closeFn(ctx)
}

// Open は STORE_DRIVER に応じてストアへ接続し、スキーマを用意する。
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:      config.DriverSQLite,
			Submissions: sqlite.NewSubmissionRepository(db),
			closeFn:     func(context.Context) error { return db.Close() },
		}, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		return &Backend{
			Driver:      config.DriverPostgres,
			Submissions: postgres.NewSubmissionRepository(db),
			closeFn:     func(context.Context) error { return sqlDB.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg config.Config) (*Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}

	repo := mongodoc.NewSubmissionRepository(client.Database(cfg.MongoDatabase), cfg.SubmissionCollection)
	if err := repo.EnsureSchema(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Backend{
		Driver:      config.DriverMongo,
		Submissions: repo,
		closeFn:     client.Disconnect,
	}, nil
}
